package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
	pkgerrors "github.com/muhammadchandra19/book-replay/pkg/errors"
	mock "github.com/muhammadchandra19/book-replay/pkg/questdb/mock"
	"github.com/muhammadchandra19/book-replay/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func testSnapshots() []*snapshotv1.Snapshot {
	return []*snapshotv1.Snapshot{
		{
			ArrivalTime:  93000000100,
			TransactTime: 93000000,
			BestBids:     []orderbookv1.PriceLevel{{Price: decimal.RequireFromString("10.5"), Quantity: 3}},
			WorstBids:    []orderbookv1.PriceLevel{{Price: decimal.RequireFromString("10.5"), Quantity: 3}},
		},
		{
			ArrivalTime:  93000100100,
			TransactTime: 93000100,
			Stats: orderbookv1.Statistics{
				CumulativeVolume:   3,
				LastPrice:          decimal.RequireFromString("10.5"),
				ParticipationCount: 1,
				TradeCount:         1,
				OpeningPrice:       decimal.RequireFromString("10.5"),
				Opened:             true,
			},
		},
	}
}

func drain(t *testing.T, src pgx.CopyFromSource) [][]any {
	t.Helper()
	var rows [][]any
	for src.Next() {
		values, err := src.Values()
		require.NoError(t, err)
		rows = append(rows, values)
	}
	require.NoError(t, src.Err())
	return rows
}

func TestRepository_Write(t *testing.T) {
	testCases := []struct {
		name      string
		snapshots []*snapshotv1.Snapshot
		mockFn    func(t *testing.T, m *mock.MockQuestDBClient)
		assertFn  func(t *testing.T, err error)
	}{
		{
			name:      "success",
			snapshots: testSnapshots(),
			mockFn: func(t *testing.T, m *mock.MockQuestDBClient) {
				m.EXPECT().CopyFrom(gomock.Any(), pgx.Identifier{"book_snapshots"}, columns, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pgx.Identifier, _ []string, src pgx.CopyFromSource) (int64, error) {
						rows := drain(t, src)
						require.Len(t, rows, 2)

						assert.Equal(t, []any{
							fixedNow, "run-1", "000001", int64(0),
							int64(93000000100), int64(93000000),
							`[{"price":"10.5","qty":3}]`, `[]`, `[{"price":"10.5","qty":3}]`, `[]`,
							int64(0), float64(0), int64(0), int64(0), float64(0),
						}, rows[0])
						assert.Equal(t, int64(1), rows[1][3])
						assert.Equal(t, float64(10.5), rows[1][11])
						assert.Equal(t, int64(1), rows[1][13])
						return int64(len(rows)), nil
					})
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:      "empty batch skips copy",
			snapshots: nil,
			mockFn:    func(t *testing.T, m *mock.MockQuestDBClient) {},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:      "copy error",
			snapshots: testSnapshots(),
			mockFn: func(t *testing.T, m *mock.MockQuestDBClient) {
				m.EXPECT().CopyFrom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))
			},
			assertFn: func(t *testing.T, err error) {
				require.Error(t, err)
				var tracer *pkgerrors.ErrorTracer
				require.ErrorAs(t, err, &tracer)
				assert.Contains(t, err.Error(), "connection reset")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := mock.NewMockQuestDBClient(ctrl)
			tc.mockFn(t, m)

			repo := NewRepository(m)
			repo.now = func() time.Time { return fixedNow }
			assert.Equal(t, "questdb", repo.Name())

			ctx := util.WithRunID(context.Background(), "run-1")
			tc.assertFn(t, repo.Write(ctx, "000001", tc.snapshots))
		})
	}
}

func TestRepository_LoadLatest(t *testing.T) {
	scanRow := func(dest ...any) error {
		*dest[0].(*int64) = 93000100100
		*dest[1].(*int64) = 93000100
		*dest[2].(*string) = `[{"price":"10.5","qty":3}]`
		*dest[3].(*string) = `[]`
		*dest[4].(*string) = `[{"price":"10.5","qty":3}]`
		*dest[5].(*string) = `[]`
		*dest[6].(*int64) = 3
		*dest[7].(*float64) = 10.5
		*dest[8].(*int64) = 1
		*dest[9].(*int64) = 1
		*dest[10].(*float64) = 10.25
		return nil
	}

	testCases := []struct {
		name     string
		mockFn   func(m *mock.MockQuestDBClient, rows *mock.MockRowsInterface)
		assertFn func(t *testing.T, s *snapshotv1.Snapshot, err error)
	}{
		{
			name: "found",
			mockFn: func(m *mock.MockQuestDBClient, rows *mock.MockRowsInterface) {
				m.EXPECT().Query(gomock.Any(), latestQuery, "000001").Return(rows, nil)
				rows.EXPECT().Next().Return(true)
				rows.EXPECT().Scan(gomock.Any()).DoAndReturn(scanRow)
				rows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, s *snapshotv1.Snapshot, err error) {
				require.NoError(t, err)
				require.NotNil(t, s)
				assert.Equal(t, int64(93000100), s.TransactTime)
				require.Len(t, s.BestBids, 1)
				assert.True(t, s.BestBids[0].Price.Equal(decimal.RequireFromString("10.5")))
				assert.Empty(t, s.BestAsks)
				assert.Equal(t, int64(3), s.Stats.CumulativeVolume)
				assert.Equal(t, "10.25", s.Stats.OpeningPrice.String())
				assert.True(t, s.Stats.Opened)
			},
		},
		{
			name: "no rows",
			mockFn: func(m *mock.MockQuestDBClient, rows *mock.MockRowsInterface) {
				m.EXPECT().Query(gomock.Any(), latestQuery, "000001").Return(rows, nil)
				rows.EXPECT().Next().Return(false)
				rows.EXPECT().Err().Return(nil)
				rows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, s *snapshotv1.Snapshot, err error) {
				assert.NoError(t, err)
				assert.Nil(t, s)
			},
		},
		{
			name: "query error",
			mockFn: func(m *mock.MockQuestDBClient, rows *mock.MockRowsInterface) {
				m.EXPECT().Query(gomock.Any(), latestQuery, "000001").Return(nil, errors.New("boom"))
			},
			assertFn: func(t *testing.T, s *snapshotv1.Snapshot, err error) {
				assert.Error(t, err)
				assert.Nil(t, s)
			},
		},
		{
			name: "corrupt levels",
			mockFn: func(m *mock.MockQuestDBClient, rows *mock.MockRowsInterface) {
				m.EXPECT().Query(gomock.Any(), latestQuery, "000001").Return(rows, nil)
				rows.EXPECT().Next().Return(true)
				rows.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
					_ = scanRow(dest...)
					*dest[3].(*string) = `{not json`
					return nil
				})
				rows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, s *snapshotv1.Snapshot, err error) {
				assert.Error(t, err)
				assert.Nil(t, s)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := mock.NewMockQuestDBClient(ctrl)
			rows := mock.NewMockRowsInterface(ctrl)
			tc.mockFn(m, rows)

			s, err := NewRepository(m).LoadLatest(context.Background(), "000001")
			tc.assertFn(t, s, err)
		})
	}
}
