package export

import (
	"context"
	"errors"
	"testing"

	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
	snapshotv1_mock "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1/mock"
	pkgerrors "github.com/muhammadchandra19/book-replay/pkg/errors"
	loggerMock "github.com/muhammadchandra19/book-replay/pkg/logger/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestExporter_Export(t *testing.T) {
	snapshots := []*snapshotv1.Snapshot{{TransactTime: 93000000}}

	testCases := []struct {
		name     string
		mockFn   func(csv, redis *snapshotv1_mock.MockSink, log *loggerMock.MockInterface)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "all sinks succeed",
			mockFn: func(csv, redis *snapshotv1_mock.MockSink, log *loggerMock.MockInterface) {
				gomock.InOrder(
					csv.EXPECT().Write(gomock.Any(), "000001", snapshots).Return(nil),
					redis.EXPECT().Write(gomock.Any(), "000001", snapshots).Return(nil),
				)
				log.EXPECT().InfoContext(gomock.Any(), "snapshots exported", gomock.Any()).Times(2)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "failing sink does not stop the others",
			mockFn: func(csv, redis *snapshotv1_mock.MockSink, log *loggerMock.MockInterface) {
				csv.EXPECT().Write(gomock.Any(), "000001", snapshots).Return(errors.New("disk full"))
				redis.EXPECT().Write(gomock.Any(), "000001", snapshots).Return(nil)
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any())
				log.EXPECT().InfoContext(gomock.Any(), "snapshots exported", gomock.Any())
			},
			assertFn: func(t *testing.T, err error) {
				var baseErr *pkgerrors.BaseError
				require.ErrorAs(t, err, &baseErr)
				require.Len(t, baseErr.GetDetails(), 1)
				assert.Equal(t, "csv", baseErr.GetDetails()[0].Field)
				assert.Contains(t, baseErr.GetDetails()[0].Message, "disk full")
				assert.True(t, baseErr.IsAllCodeEqual(string(pkgerrors.SinkWriteError)))
			},
		},
		{
			name: "every failure is reported",
			mockFn: func(csv, redis *snapshotv1_mock.MockSink, log *loggerMock.MockInterface) {
				csv.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
				redis.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
			},
			assertFn: func(t *testing.T, err error) {
				var baseErr *pkgerrors.BaseError
				require.ErrorAs(t, err, &baseErr)
				assert.Len(t, baseErr.GetDetails(), 2)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			csv := snapshotv1_mock.NewMockSink(ctrl)
			csv.EXPECT().Name().Return("csv").AnyTimes()
			redis := snapshotv1_mock.NewMockSink(ctrl)
			redis.EXPECT().Name().Return("redis").AnyTimes()
			log := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(csv, redis, log)

			exporter := NewExporter(log, csv, redis)
			assert.Equal(t, []string{"csv", "redis"}, exporter.Sinks())
			tc.assertFn(t, exporter.Export(context.Background(), "000001", snapshots))
		})
	}
}

func TestExporter_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := snapshotv1_mock.NewMockSink(ctrl)
	err := NewExporter(loggerMock.NewMockInterface(ctrl), sink).Export(ctx, "000001", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
