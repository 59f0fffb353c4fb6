package dtos

// TermsInput is the editable part of a contract or annex. On create, nil
// means "use the default"; on update, nil means "leave as stored".
type TermsInput struct {
	PartyName           *string `json:"party_name,omitempty" validate:"omitempty,max=300"`
	PartyAddress        *string `json:"party_address,omitempty" validate:"omitempty,max=500"`
	PartyPhone          *string `json:"party_phone,omitempty" validate:"omitempty,max=200"`
	PartyRepresentative *string `json:"party_representative,omitempty" validate:"omitempty,max=200"`
	PartyPosition       *string `json:"party_position,omitempty" validate:"omitempty,max=200"`
	PartyTaxCode        *string `json:"party_tax_code,omitempty" validate:"omitempty,max=50"`
	PartyEmail          *string `json:"party_email,omitempty" validate:"omitempty,max=500"`

	IDCardNo       *string `json:"id_card_no,omitempty" validate:"omitempty,max=50"`
	IDCardIssuedOn *string `json:"id_card_issued_on,omitempty" validate:"omitempty,max=50"`

	ChannelName *string `json:"channel_name,omitempty" validate:"omitempty,max=300"`
	// ChannelLink accepts either a channel URL or a bare UC… id.
	ChannelLink *string `json:"channel_link,omitempty" validate:"omitempty,max=500"`

	HandlerEmail *string `json:"handler_email,omitempty" validate:"omitempty,max=200"`

	AmountBeforeVAT *Money   `json:"amount_before_vat,omitempty" validate:"omitempty,gte=0"`
	VATPercent      *float64 `json:"vat_percent,omitempty" validate:"omitempty,gte=0,lte=100"`

	DocxPath      *string `json:"docx_path,omitempty" validate:"omitempty,max=1000"`
	CataloguePath *string `json:"catalogue_path,omitempty" validate:"omitempty,max=1000"`
}
