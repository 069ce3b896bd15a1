package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRegister(t *testing.T) {
	freezeTime(t)
	e := newEnv(t, nil)
	ctx := context.Background()

	require.NoError(t, e.clients.Register(ctx, &models.Client{
		UserID:      "CL000001",
		CompanyName: "Acme",
		Profile:     models.Profile{"mobile": "9876543211"},
	}))

	got, err := e.rm.Clients().GetByID(ctx, "CL000001")
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeClient, got.Type)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, "9876543211", got.MobileNumber)
	assert.True(t, got.CreatedAt.Equal(fixedNow))

	err = e.clients.Register(ctx, &models.Client{UserID: "CL000001"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	err = e.clients.Register(ctx, &models.Client{})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestClientRegister_ExplicitMobileNumberWins(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	require.NoError(t, e.clients.Register(ctx, &models.Client{
		UserID:       "CL000002",
		MobileNumber: "111",
		Profile:      models.Profile{"mobile": "222"},
	}))

	exists, userType, err := e.auth.CheckMobile(ctx, "111")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, models.UserTypeClient, userType)
}
