package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// TriggerClaims identifica quem pode disparar execuções de cron via HTTP.
type TriggerClaims struct {
	Issuer string `json:"iss_name"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

const TriggerScopeCron = "cron"
