package testutil

import (
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/coldbox/coldbox/testutil/mocks"
)

// PrepareMockedEntropySource returns a source that yields rolls in order and
// fails the test if asked for more.
func PrepareMockedEntropySource(t *testing.T, rolls []uint16) *mocks.MockEntropySource {
	ctl := gomock.NewController(t)
	mockEntropySource := mocks.NewMockEntropySource(ctl)

	calls := make([]*gomock.Call, 0, len(rolls))
	for _, roll := range rolls {
		calls = append(calls, mockEntropySource.EXPECT().Roll().Return(roll, nil).Times(1))
	}
	gomock.InOrder(calls...)

	return mockEntropySource
}
