package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	ActorKey     ContextKey = "actor"
	TenantIDKey  ContextKey = "tenantID"
	RequestStart ContextKey = "requestStart"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())
