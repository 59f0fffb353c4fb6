package models

// Terms are the business fields shared by contracts and annexes. They are
// opaque to the versioning mechanism.
type Terms struct {
	PartyName           string `json:"party_name"`
	PartyAddress        string `json:"party_address"`
	PartyPhone          string `json:"party_phone"`
	PartyRepresentative string `json:"party_representative"`
	PartyPosition       string `json:"party_position"`
	PartyTaxCode        string `json:"party_tax_code"`
	PartyEmail          string `json:"party_email"`

	IDCardNo       string `json:"id_card_no"`
	IDCardIssuedOn string `json:"id_card_issued_on"`

	ChannelName string `json:"channel_name"`
	ChannelID   string `json:"channel_id"`
	ChannelLink string `json:"channel_link"`

	HandlerEmail string `json:"handler_email"`

	AmountBeforeVAT int64   `json:"amount_before_vat"`
	VATPercent      float64 `json:"vat_percent"`
	VATAmount       int64   `json:"vat_amount"`
	TotalAmount     int64   `json:"total_amount"`

	DocxPath      string `json:"docx_path"`
	CataloguePath string `json:"catalogue_path"`
}
