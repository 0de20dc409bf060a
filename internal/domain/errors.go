package domain

import "errors"

var (
	ErrLeadNotFound       = errors.New("lead not found")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrProfileNotFound    = errors.New("partner profile not found")
	ErrRelationNotFound   = errors.New("partner relation not found")
	ErrUnknownPartnerRole = errors.New("unknown partner role")
	ErrSaleNotRetryable   = errors.New("sale is not eligible for ledger sync")
	ErrMissingAgent       = errors.New("sales agent commission without agent")
	ErrInvalidRelation    = errors.New("invalid partner relation")
	ErrInvalidInput       = errors.New("invalid input")
)
