package quotation

import (
	"context"
	"fmt"

	"github.com/envatex/storefront-gateway/internal/session"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
	"github.com/envatex/storefront-gateway/pkg/metrics"
	"github.com/envatex/storefront-gateway/pkg/upstream"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type submitClient interface {
	SubmitQuotation(ctx context.Context, payload upstream.QuotationPayload) error
}

// Draft carries the customer-entered fields of a quotation request. The
// items always come from the session cart, never from the request body.
type Draft struct {
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	CustomerComments string
}

// Service turns a session cart plus a draft into an upstream quotation.
type Service interface {
	Submit(ctx context.Context, sess *session.Session, draft Draft) error
}

type service struct {
	api  submitClient
	mtr  *metrics.QuotationMetrics
	logg *logger.Logger
}

// NewService builds the quotation submitter.
func NewService(api submitClient, mtr *metrics.QuotationMetrics, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("quotation api client required")
	}
	return &service{api: api, mtr: mtr, logg: logg}, nil
}

// Submit sends the session cart upstream as a quotation request. The cart is
// cleared only after the storefront api accepts the submission; any failure
// leaves it untouched so the customer can retry. A second submission on the
// same session while one is in flight is rejected.
func (s *service) Submit(ctx context.Context, sess *session.Session, draft Draft) error {
	if sess == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "session missing")
	}

	if err := validateDraft(draft); err != nil {
		return err
	}

	if err := sess.BeginSubmission(); err != nil {
		return err
	}
	defer sess.EndSubmission()

	entries := sess.Cart().Snapshot()
	if len(entries) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot submit an empty cart")
	}

	payload := upstream.QuotationPayload{
		CustomerName:     draft.CustomerName,
		CustomerEmail:    draft.CustomerEmail,
		CustomerPhone:    draft.CustomerPhone,
		CustomerComments: draft.CustomerComments,
		Items:            make([]upstream.QuotationItemPayload, 0, len(entries)),
	}
	for _, entry := range entries {
		payload.Items = append(payload.Items, upstream.QuotationItemPayload{
			ProductID: entry.Product.ID,
			Quantity:  entry.Quantity,
		})
	}

	if err := s.api.SubmitQuotation(ctx, payload); err != nil {
		s.mtr.IncFailure(failureCode(err))
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "quotation.submit.failed")
		}
		return err
	}

	sess.Cart().Clear()
	s.mtr.IncSuccess()
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "items", len(entries)), "quotation.submit.accepted")
	}
	return nil
}

func validateDraft(draft Draft) error {
	if err := validate.Var(draft.CustomerName, "required"); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if err := validate.Var(draft.CustomerEmail, "required,email"); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "a valid customer email is required")
	}
	return nil
}

func failureCode(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return string(pkgerrors.CodeInternal)
}
