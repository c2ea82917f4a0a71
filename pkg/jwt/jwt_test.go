package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/inventario-ledger-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "admin", pkgjwt.TokenTypeAccess, "test", time.Minute)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, pkgjwt.TokenTypeAccess, claims.Type)
	assert.Equal(t, "test", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "user", pkgjwt.TokenTypeAccess, "test", time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "user", pkgjwt.TokenTypeAccess, "test", -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParseOfType_RechazaRefreshComoAccess(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "user", pkgjwt.TokenTypeRefresh, "test", time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.ParseOfType(secret, tok, pkgjwt.TokenTypeAccess)
	assert.ErrorIs(t, err, pkgjwt.ErrWrongTokenType)

	claims, err := pkgjwt.ParseOfType(secret, tok, pkgjwt.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestGenerate_Validaciones(t *testing.T) {
	_, err := pkgjwt.Generate("", "user-1", "user", pkgjwt.TokenTypeAccess, "test", time.Minute)
	assert.Error(t, err)

	_, err = pkgjwt.Generate(secret, "user-1", "user", "session", "test", time.Minute)
	assert.Error(t, err)
}
