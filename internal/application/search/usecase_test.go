package search_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/application/search"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/busbar"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/infrastructure/memory"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

type recordingResolver struct {
	mu   sync.Mutex
	seen []entity.CalcParams
}

func (r *recordingResolver) Resolve(_ context.Context, p entity.CalcParams) (*string, error) {
	r.mu.Lock()
	r.seen = append(r.seen, p)
	r.mu.Unlock()
	l := fmt.Sprintf("%d", 10*p.Force/p.A)
	return &l, nil
}

type stubQuota struct {
	calls int
	err   error
}

func (q *stubQuota) ConsumeSearch(context.Context, string) error {
	q.calls++
	return q.err
}

func seed(t *testing.T, store *memory.Store, key, img1 string, resmini int, aList string) {
	t.Helper()
	ctx := context.Background()
	repo := store.Components()
	require.NoError(t, repo.CreateInfo(ctx, &entity.ComponentInfo{
		Key: key, NbPhase: 1, Angle: 90, Resmini: resmini, AList: aList, Img1Article: img1,
		Info: key + " support", UnitPrice: decimal.NewFromInt(10),
	}))
	require.NoError(t, repo.ReplaceVariants(ctx, key, 1, busbar.Combinations(key, 1, []int{5}, []int{50, 63}, []int{3}, []string{"Flat"})))
}

func request() dto.QueryBusbarRequest {
	return dto.QueryBusbarRequest{PerPhase: "1 Busbar", Thickness: "5", Width: "50", Poles: "Three", Shape: "Flat", Icc: 50}
}

func TestQuery_ResolvesLPerInfo(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "GPS", "A123", 170, "150,200")
	seed(t, store, "MBS", "", 100, "x")
	resolver := &recordingResolver{}
	quota := &stubQuota{}
	uc := search.NewSearchUseCase(store.Components(), resolver, quota, logger.Nop(), 2)

	resp, err := uc.Query(context.Background(), "user-1", request())
	require.NoError(t, err)

	assert.Equal(t, 1, quota.calls)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, 50, resp.Icc)
	assert.InDelta(t, 105.0, resp.Ipk, 1e-9)
	assert.InDelta(t, 2.1, resp.PeakFactor, 1e-9)

	require.Len(t, resp.Products, 2)
	gps := resp.Products[0]
	assert.Equal(t, "GPS", gps.ComponentID)
	require.Len(t, gps.AdditionalInfo, 1)
	require.NotNil(t, gps.AdditionalInfo[0].L)
	assert.Equal(t, "113", *gps.AdditionalInfo[0].L)

	// a_list without a leading integer skips the calculator
	mbs := resp.Products[1]
	assert.Nil(t, mbs.AdditionalInfo[0].L)

	require.Len(t, resolver.seen, 1)
	assert.Equal(t, entity.CalcParams{W: 50, T: 5, B: 1, Angle: 90, A: 150, Icc: 50, Force: 1700, NbrePhase: 3}, resolver.seen[0])
}

func TestQuery_WithoutImg1AndPaging(t *testing.T) {
	store := memory.NewStore()
	for i := 0; i < 12; i++ {
		img := ""
		if i%4 == 0 {
			img = "IMG"
		}
		seed(t, store, fmt.Sprintf("C%02d", i), img, 100, "100")
	}
	uc := search.NewSearchUseCase(store.Components(), &recordingResolver{}, nil, logger.Nop(), 4)

	in := request()
	in.Page = 2
	resp, err := uc.Query(context.Background(), "", in)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Products, 2)

	in.WithoutImg1 = true
	in.Page = 1
	resp, err = uc.Query(context.Background(), "", in)
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Total)
	for _, p := range resp.Products {
		assert.Empty(t, p.AdditionalInfo[0].Img1Article)
	}
}

func TestQuery_QuotaExceededStopsSearch(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "GPS", "", 170, "150")
	resolver := &recordingResolver{}
	uc := search.NewSearchUseCase(store.Components(), resolver, &stubQuota{err: domain.ErrQuotaExceeded}, logger.Nop(), 1)

	_, err := uc.Query(context.Background(), "user-1", request())
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	assert.Empty(t, resolver.seen)
}

func TestQuery_InvalidInputDoesNotConsumeQuota(t *testing.T) {
	quota := &stubQuota{}
	uc := search.NewSearchUseCase(memory.NewStore().Components(), &recordingResolver{}, quota, logger.Nop(), 1)

	in := request()
	in.Poles = "Five"
	_, err := uc.Query(context.Background(), "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, quota.calls)
}

func TestQuery_NoMatches(t *testing.T) {
	uc := search.NewSearchUseCase(memory.NewStore().Components(), &recordingResolver{}, nil, logger.Nop(), 1)

	resp, err := uc.Query(context.Background(), "", request())
	require.NoError(t, err)
	assert.Zero(t, resp.Total)
	assert.NotNil(t, resp.Products)
	assert.Empty(t, resp.Products)
}

func TestParseCriteria_ClampsIcc(t *testing.T) {
	in := request()
	in.Icc = 500
	crit, err := search.ParseCriteria(in)
	require.NoError(t, err)
	assert.Equal(t, busbar.MaxIcc, crit.Icc)

	in.Icc = 0
	crit, err = search.ParseCriteria(in)
	require.NoError(t, err)
	assert.Equal(t, busbar.MinIcc, crit.Icc)
}

func TestParseCriteria_RejectsUnofferedGeometry(t *testing.T) {
	in := request()
	in.Thickness, in.Width = "2", "50"
	_, err := search.ParseCriteria(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in.Thickness, in.Width = "7", "12"
	_, err = search.ParseCriteria(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in.Thickness, in.Width = "10", "200"
	_, err = search.ParseCriteria(in)
	assert.NoError(t, err)
}

func TestOptions(t *testing.T) {
	opts := search.Options()
	assert.Equal(t, busbar.ThicknessOptions(), opts.Thickness)
	for _, th := range opts.Thickness {
		assert.Equal(t, busbar.WidthOptions(th), opts.Widths[th])
	}
	assert.Equal(t, []string{"Bi", "Three", "Four"}, opts.Poles)
}
