// Package mocks provides test doubles for the publisher package
package mocks

import (
	"context"
	"io"

	"github.com/oneconcern/playpub/pkg/publisher"
	"github.com/stretchr/testify/mock"
)

var _ publisher.EditsService = &Edits{}

// Edits mocks a publisher.EditsService
type Edits struct {
	mock.Mock
}

// NewEdits builds a mock EditsService
func NewEdits() *Edits {
	return &Edits{}
}

// InsertEdit mocks the creation of an edit
func (m *Edits) InsertEdit(ctx context.Context, packageName string) (string, error) {
	args := m.Called(ctx, packageName)
	return args.String(0), args.Error(1)
}

// ListBundles mocks the listing of bundles
func (m *Edits) ListBundles(ctx context.Context, packageName, editID string) ([]publisher.Bundle, error) {
	args := m.Called(ctx, packageName, editID)
	bundles, _ := args.Get(0).([]publisher.Bundle)
	return bundles, args.Error(1)
}

// UploadBundle mocks a bundle upload
func (m *Edits) UploadBundle(ctx context.Context, packageName, editID string, artifact io.Reader) (publisher.Bundle, error) {
	args := m.Called(ctx, packageName, editID, artifact)
	bundle, _ := args.Get(0).(publisher.Bundle)
	return bundle, args.Error(1)
}

// UpdateTrack mocks a track update
func (m *Edits) UpdateTrack(ctx context.Context, packageName, editID string, update publisher.TrackUpdate) error {
	return m.Called(ctx, packageName, editID, update).Error(0)
}

// CommitEdit mocks the commit of an edit
func (m *Edits) CommitEdit(ctx context.Context, packageName, editID string) error {
	return m.Called(ctx, packageName, editID).Error(0)
}

// DeleteEdit mocks the deletion of an edit
func (m *Edits) DeleteEdit(ctx context.Context, packageName, editID string) error {
	return m.Called(ctx, packageName, editID).Error(0)
}

// Methods returns the names of the methods called so far, in order
func (m *Edits) Methods() []string {
	methods := make([]string, 0, len(m.Calls))
	for _, call := range m.Calls {
		methods = append(methods, call.Method)
	}
	return methods
}
