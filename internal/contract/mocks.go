package contract

import (
	"context"

	"github.com/pynyc/tripmap/schema"
	"github.com/stretchr/testify/mock"
)

// MockTripFetcher is a mock implementation of TripFetcher for testing.
type MockTripFetcher struct {
	mock.Mock
}

var _ TripFetcher = &MockTripFetcher{} // Compile-time check

// FetchTrips implements the TripFetcher interface.
func (m *MockTripFetcher) FetchTrips(ctx context.Context, query string) (schema.TripFeatureCollection, error) {
	args := m.Called(ctx, query)
	fc, _ := args.Get(0).(schema.TripFeatureCollection)
	return fc, args.Error(1)
}

// FetchBoundaries implements the TripFetcher interface.
func (m *MockTripFetcher) FetchBoundaries(ctx context.Context) (schema.TripFeatureCollection, error) {
	args := m.Called(ctx)
	fc, _ := args.Get(0).(schema.TripFeatureCollection)
	return fc, args.Error(1)
}

// FetchDensities implements the TripFetcher interface.
func (m *MockTripFetcher) FetchDensities(ctx context.Context, query string) ([]schema.TripDensity, error) {
	args := m.Called(ctx, query)
	rows, _ := args.Get(0).([]schema.TripDensity)
	return rows, args.Error(1)
}

// MockOverlay is a mock implementation of Overlay for testing.
// Features are served from the embedded slice; mutations are recorded as calls.
type MockOverlay struct {
	mock.Mock
	Features []schema.TripFeature
}

var _ Overlay = &MockOverlay{} // Compile-time check

// Len implements the Overlay interface.
func (m *MockOverlay) Len() int {
	return len(m.Features)
}

// Feature implements the Overlay interface.
func (m *MockOverlay) Feature(i int) schema.TripFeature {
	return m.Features[i]
}

// SetStyle implements the Overlay interface.
func (m *MockOverlay) SetStyle(i int, style schema.Style) {
	m.Called(i, style)
}

// BringToFront implements the Overlay interface.
func (m *MockOverlay) BringToFront(i int) {
	m.Called(i)
}

// OpenPopup implements the Overlay interface.
func (m *MockOverlay) OpenPopup(i int, content string) {
	m.Called(i, content)
}
