package admin

import (
	"context"
	"fmt"

	"github.com/envatex/storefront-gateway/internal/session"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
	"github.com/envatex/storefront-gateway/pkg/upstream"
)

type apiClient interface {
	CreateProduct(ctx context.Context, token string, input upstream.ProductInput) (*upstream.Product, error)
	UpdateProduct(ctx context.Context, token string, productID int64, input upstream.ProductInput) (*upstream.Product, error)
	DeleteProduct(ctx context.Context, token string, productID int64) error
	ListQuotations(ctx context.Context, token string) ([]upstream.Quotation, error)
	RespondQuotation(ctx context.Context, token string, quotationID int64, response string) (*upstream.Quotation, error)
	DeleteQuotation(ctx context.Context, token string, quotationID int64) error
}

// Service relays admin product and quotation operations to the storefront
// api using the session-bound token.
type Service interface {
	CreateProduct(ctx context.Context, sess *session.Session, input upstream.ProductInput) (*upstream.Product, error)
	UpdateProduct(ctx context.Context, sess *session.Session, productID int64, input upstream.ProductInput) (*upstream.Product, error)
	DeleteProduct(ctx context.Context, sess *session.Session, productID int64) error
	ListQuotations(ctx context.Context, sess *session.Session) ([]upstream.Quotation, error)
	RespondQuotation(ctx context.Context, sess *session.Session, quotationID int64, response string) (*upstream.Quotation, error)
	DeleteQuotation(ctx context.Context, sess *session.Session, quotationID int64) error
}

type service struct {
	api  apiClient
	logg *logger.Logger
}

// NewService builds the admin passthrough service.
func NewService(api apiClient, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("admin api client required")
	}
	return &service{api: api, logg: logg}, nil
}

// token returns the session credential, or an unauthorized error when none
// is held.
func (s *service) token(sess *session.Session) (string, error) {
	if sess == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session missing")
	}
	token := sess.Token()
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return token, nil
}

// relay maps upstream authorization failures onto the session: a rejected
// token is discarded so the next request starts unauthenticated.
func (s *service) relay(ctx context.Context, sess *session.Session, err error) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeUnauthorized {
		sess.ClearToken()
		if s.logg != nil {
			s.logg.Warn(ctx, "admin.token.discarded")
		}
	}
	return err
}

func (s *service) CreateProduct(ctx context.Context, sess *session.Session, input upstream.ProductInput) (*upstream.Product, error) {
	token, err := s.token(sess)
	if err != nil {
		return nil, err
	}
	product, err := s.api.CreateProduct(ctx, token, input)
	if err != nil {
		return nil, s.relay(ctx, sess, err)
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, sess *session.Session, productID int64, input upstream.ProductInput) (*upstream.Product, error) {
	token, err := s.token(sess)
	if err != nil {
		return nil, err
	}
	product, err := s.api.UpdateProduct(ctx, token, productID, input)
	if err != nil {
		return nil, s.relay(ctx, sess, err)
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, sess *session.Session, productID int64) error {
	token, err := s.token(sess)
	if err != nil {
		return err
	}
	return s.relay(ctx, sess, s.api.DeleteProduct(ctx, token, productID))
}

func (s *service) ListQuotations(ctx context.Context, sess *session.Session) ([]upstream.Quotation, error) {
	token, err := s.token(sess)
	if err != nil {
		return nil, err
	}
	quotations, err := s.api.ListQuotations(ctx, token)
	if err != nil {
		return nil, s.relay(ctx, sess, err)
	}
	return quotations, nil
}

func (s *service) RespondQuotation(ctx context.Context, sess *session.Session, quotationID int64, response string) (*upstream.Quotation, error) {
	token, err := s.token(sess)
	if err != nil {
		return nil, err
	}
	quotation, err := s.api.RespondQuotation(ctx, token, quotationID, response)
	if err != nil {
		return nil, s.relay(ctx, sess, err)
	}
	return quotation, nil
}

func (s *service) DeleteQuotation(ctx context.Context, sess *session.Session, quotationID int64) error {
	token, err := s.token(sess)
	if err != nil {
		return err
	}
	return s.relay(ctx, sess, s.api.DeleteQuotation(ctx, token, quotationID))
}
