package services

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/utils"
)

// storeError maps a repository outcome to the AppError the controllers
// render. entity names the record in the public message.
func storeError(err error, entity, action string) error {
	var conflict *utils.RowVersionConflictError
	switch {
	case errors.As(err, &conflict):
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeRowVersionConflict,
			Message: fmt.Sprintf("%s was modified by someone else (you edited version %d, it is now at version %d)",
				entity, conflict.Expected, conflict.Actual),
			Details: conflict.Current,
			Err:     err,
		}
	case errors.Is(err, utils.ErrRowVersionConflict):
		return &utils.AppError{StatusCode: http.StatusConflict, Code: utils.ErrCodeRowVersionConflict, Message: entity + " is being modified concurrently", Err: err}
	case errors.Is(err, utils.ErrNotFound):
		return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: entity + " not found", Err: err}
	case errors.Is(err, utils.ErrDuplicateKey):
		return &utils.AppError{StatusCode: http.StatusConflict, Code: utils.ErrCodeDuplicateKey, Message: entity + " already exists", Err: err}
	default:
		return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: fmt.Sprintf("Failed to %s %s", action, strings.ToLower(entity)), Err: err}
	}
}

func validationError(msg string, details any) error {
	return &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeValidation, Message: msg, Details: details}
}

// parseSignedOn reads a yyyy-mm-dd date. nil in, nil out.
func parseSignedOn(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(*s))
	if err != nil {
		return nil, validationError("signed_on must be yyyy-mm-dd", err.Error())
	}
	return &t, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// applyTerms overlays the non-nil inputs on t and re-derives the amounts.
func applyTerms(t *models.Terms, in dtos.TermsInput) {
	setString(&t.PartyName, in.PartyName)
	setString(&t.PartyAddress, in.PartyAddress)
	if in.PartyPhone != nil {
		t.PartyPhone = utils.NormalizeMultiPhones(*in.PartyPhone)
	}
	setString(&t.PartyRepresentative, in.PartyRepresentative)
	setString(&t.PartyPosition, in.PartyPosition)
	setString(&t.PartyTaxCode, in.PartyTaxCode)
	if in.PartyEmail != nil {
		t.PartyEmail = utils.NormalizeMultiEmails(*in.PartyEmail)
	}
	setString(&t.IDCardNo, in.IDCardNo)
	setString(&t.IDCardIssuedOn, in.IDCardIssuedOn)
	setString(&t.ChannelName, in.ChannelName)
	if in.ChannelLink != nil {
		t.ChannelID, t.ChannelLink = utils.NormalizeChannelInput(*in.ChannelLink)
	}
	setString(&t.HandlerEmail, in.HandlerEmail)
	if in.AmountBeforeVAT != nil {
		t.AmountBeforeVAT = int64(*in.AmountBeforeVAT)
	}
	if in.VATPercent != nil {
		t.VATPercent = *in.VATPercent
	}
	setString(&t.DocxPath, in.DocxPath)
	setString(&t.CataloguePath, in.CataloguePath)

	deriveAmounts(t)
}

// deriveAmounts: VAT = round(before * pct / 100), total = before + VAT.
func deriveAmounts(t *models.Terms) {
	t.VATAmount = int64(math.Round(float64(t.AmountBeforeVAT) * t.VATPercent / 100))
	t.TotalAmount = t.AmountBeforeVAT + t.VATAmount
}

func defaultTerms() models.Terms {
	return models.Terms{
		PartyPosition: utils.DefaultPartyPosition,
		VATPercent:    utils.DefaultVATPercent,
	}
}

func actorOrSystem(actor string) string {
	if a := strings.TrimSpace(actor); a != "" {
		return a
	}
	return utils.SystemActor
}
