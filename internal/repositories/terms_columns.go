package repositories

import "github.com/stevedao0/contract-service/internal/models"

// termsColumns must stay in step with termsArgs and termsDest.
var termsColumns = []string{
	"party_name",
	"party_address",
	"party_phone",
	"party_representative",
	"party_position",
	"party_tax_code",
	"party_email",
	"id_card_no",
	"id_card_issued_on",
	"channel_name",
	"channel_id",
	"channel_link",
	"handler_email",
	"amount_before_vat",
	"vat_percent",
	"vat_amount",
	"total_amount",
	"docx_path",
	"catalogue_path",
}

func termsArgs(t *models.Terms) []any {
	return []any{
		t.PartyName,
		t.PartyAddress,
		t.PartyPhone,
		t.PartyRepresentative,
		t.PartyPosition,
		t.PartyTaxCode,
		t.PartyEmail,
		t.IDCardNo,
		t.IDCardIssuedOn,
		t.ChannelName,
		t.ChannelID,
		t.ChannelLink,
		t.HandlerEmail,
		t.AmountBeforeVAT,
		t.VATPercent,
		t.VATAmount,
		t.TotalAmount,
		t.DocxPath,
		t.CataloguePath,
	}
}

func termsDest(t *models.Terms) []any {
	return []any{
		&t.PartyName,
		&t.PartyAddress,
		&t.PartyPhone,
		&t.PartyRepresentative,
		&t.PartyPosition,
		&t.PartyTaxCode,
		&t.PartyEmail,
		&t.IDCardNo,
		&t.IDCardIssuedOn,
		&t.ChannelName,
		&t.ChannelID,
		&t.ChannelLink,
		&t.HandlerEmail,
		&t.AmountBeforeVAT,
		&t.VATPercent,
		&t.VATAmount,
		&t.TotalAmount,
		&t.DocxPath,
		&t.CataloguePath,
	}
}

var trackingColumns = []string{"created_at", "updated_at", "created_by", "updated_by", "row_version"}
