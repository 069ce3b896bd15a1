package indexes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/server/kv"
	"github.com/dmitrijs2005/freelancehub/internal/server/kv/kvtest"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*KVRepository, kv.Store) {
	t.Helper()
	s := kv.NewMemoryStore()
	return NewKVRepository(s), s
}

func TestAddToCategory_NoDuplicates(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.AddToCategory(ctx, "Legal", "FL000001"))
	require.NoError(t, r.AddToCategory(ctx, "Legal", "FL000002"))
	require.NoError(t, r.AddToCategory(ctx, "Legal", "FL000001"))

	ids, err := r.CategoryMembers(ctx, "Legal")
	require.NoError(t, err)
	assert.Equal(t, []string{"FL000001", "FL000002"}, ids)
}

func TestAddToCategory_ConcurrentWritersKeepAllIDs(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, r.AddToCategory(ctx, "Design & Creative", fmt.Sprintf("FL%06d", i)))
		}(i)
	}
	wg.Wait()

	ids, err := r.CategoryMembers(ctx, "Design & Creative")
	require.NoError(t, err)
	assert.Len(t, ids, 50)
}

func TestCategoryCounts_DefaultsToZero(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()
	require.NoError(t, r.AddToCategory(ctx, "Development & IT", "FL000001"))

	counts, err := r.CategoryCounts(ctx, models.Categories)
	require.NoError(t, err)
	require.Len(t, counts, len(models.Categories))
	assert.Equal(t, 1, counts["Development & IT"])
	assert.Equal(t, 0, counts["Legal"])
}

func TestCategoryMembers_EmptyWhenAbsent(t *testing.T) {
	r, _ := newRepo(t)
	ids, err := r.CategoryMembers(context.Background(), "Legal")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestPushFeaturedJob_MostRecentFirstAndCapped(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	for i := 1; i <= FeaturedJobsCap; i++ {
		require.NoError(t, r.PushFeaturedJob(ctx, fmt.Sprintf("JB%06d", i)))
	}
	ids, err := r.FeaturedJobIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, FeaturedJobsCap)
	assert.Equal(t, "JB000020", ids[0])
	assert.Equal(t, "JB000001", ids[FeaturedJobsCap-1])

	// the 21st insert evicts the oldest
	require.NoError(t, r.PushFeaturedJob(ctx, "JB000021"))
	ids, err = r.FeaturedJobIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, FeaturedJobsCap)
	assert.Equal(t, "JB000021", ids[0])
	assert.Equal(t, "JB000002", ids[FeaturedJobsCap-1])
	assert.NotContains(t, ids, "JB000001")
}

func TestFeaturedJobIDs_EmptyWhenAbsent(t *testing.T) {
	r, _ := newRepo(t)
	ids, err := r.FeaturedJobIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestClaimMobile_TieBreak(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	client := models.MobileEntry{UserID: "CL000001", UserType: models.UserTypeClient}
	freelancer := models.MobileEntry{UserID: "FL000009", UserType: models.UserTypeFreelancer}
	lowerFreelancer := models.MobileEntry{UserID: "FL000001", UserType: models.UserTypeFreelancer}

	require.NoError(t, r.ClaimMobile(ctx, "9876543210", client))
	got, err := r.LookupMobile(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, client, *got)

	// freelancer beats client
	require.NoError(t, r.ClaimMobile(ctx, "9876543210", freelancer))
	got, err = r.LookupMobile(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, freelancer, *got)

	// client cannot take it back
	require.NoError(t, r.ClaimMobile(ctx, "9876543210", client))
	got, err = r.LookupMobile(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, freelancer, *got)

	// smaller id of the same type wins
	require.NoError(t, r.ClaimMobile(ctx, "9876543210", lowerFreelancer))
	got, err = r.LookupMobile(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, lowerFreelancer, *got)
}

func TestClaimMobile_EmptyNumberIgnored(t *testing.T) {
	r, s := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.ClaimMobile(ctx, "", models.MobileEntry{UserID: "FL1", UserType: models.UserTypeFreelancer}))
	recs, err := s.GetByPrefix(ctx, MobilePrefix)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLookupMobile_NotFound(t *testing.T) {
	r, _ := newRepo(t)
	_, err := r.LookupMobile(context.Background(), "0000000000")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = r.LookupMobile(context.Background(), "")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestReleaseMobile_OnlyOwnEntry(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	owner := models.MobileEntry{UserID: "FL000001", UserType: models.UserTypeFreelancer}
	other := models.MobileEntry{UserID: "CL000001", UserType: models.UserTypeClient}
	require.NoError(t, r.ClaimMobile(ctx, "111", owner))

	require.NoError(t, r.ReleaseMobile(ctx, "111", other))
	_, err := r.LookupMobile(ctx, "111")
	require.NoError(t, err)

	require.NoError(t, r.ReleaseMobile(ctx, "111", owner))
	_, err = r.LookupMobile(ctx, "111")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.ReleaseMobile(ctx, "missing", owner))
}

func TestReleaseMobile_ComparesAndDeletesInOneUpdate(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	// plain deletes fail, so only the atomic Update path can remove the key
	r := NewKVRepository(kvtest.NewFailingStore(mem, errors.New("no plain delete"), "delete"))

	owner := models.MobileEntry{UserID: "FL000002", UserType: models.UserTypeFreelancer}
	better := models.MobileEntry{UserID: "FL000001", UserType: models.UserTypeFreelancer}
	require.NoError(t, r.ClaimMobile(ctx, "111", owner))

	// a higher ranked claim lands before the release runs
	require.NoError(t, r.ClaimMobile(ctx, "111", better))
	require.NoError(t, r.ReleaseMobile(ctx, "111", owner))

	got, err := r.LookupMobile(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, better, *got)

	require.NoError(t, r.ReleaseMobile(ctx, "111", better))
	_, err = r.LookupMobile(ctx, "111")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListMobiles(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	a := models.MobileEntry{UserID: "FL000001", UserType: models.UserTypeFreelancer}
	b := models.MobileEntry{UserID: "CL000001", UserType: models.UserTypeClient}
	require.NoError(t, r.ClaimMobile(ctx, "111", a))
	require.NoError(t, r.ClaimMobile(ctx, "222", b))

	all, err := r.ListMobiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]models.MobileEntry{"111": a, "222": b}, all)
}
