package auth

import "ayitichat/internal/domain/models"

// JWTVerifier validates bearer tokens and extracts Supabase claims.
type JWTVerifier interface {
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)
	Close() error
}
