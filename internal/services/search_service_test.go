package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-desk/internal/models"
	"invoice-desk/internal/remote"
)

func seedMock(t *testing.T, m *remote.MockClient) (int, int) {
	t.Helper()
	ctx := context.Background()

	a, err := m.Create(ctx, &models.InvoiceRecord{CustomerName: "Acme Ltd", ServiceDescription: "Logo Design"})
	require.NoError(t, err)
	b, err := m.Create(ctx, &models.InvoiceRecord{CustomerName: "Beta Co", ServiceDescription: "Hosting Setup"})
	require.NoError(t, err)
	return a.ID, b.ID
}

func TestSearchReportsEmptyState(t *testing.T) {
	s := NewSearchService(remote.NewMockClient())

	res, err := s.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.Empty(t, res.Records)
}

func TestSearchHoldsResults(t *testing.T) {
	mock := remote.NewMockClient()
	seedMock(t, mock)
	s := NewSearchService(mock)

	res, err := s.Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.False(t, res.Empty)
	assert.Equal(t, "Acme Ltd", res.Records[0].CustomerName)
}

func TestSearchFailureKeepsHeldList(t *testing.T) {
	mock := remote.NewMockClient()
	seedMock(t, mock)
	s := NewSearchService(mock)

	_, err := s.Search(context.Background(), "acme")
	require.NoError(t, err)

	mock.FailSearch = true
	_, err = s.Search(context.Background(), "beta")
	require.Error(t, err)

	held := s.Results()
	require.Len(t, held, 1)
	assert.Equal(t, "Acme Ltd", held[0].CustomerName)
}

func TestOpenEditReturnsIndependentCopy(t *testing.T) {
	mock := remote.NewMockClient()
	idA, _ := seedMock(t, mock)
	s := NewSearchService(mock)

	_, err := s.Search(context.Background(), "acme")
	require.NoError(t, err)

	buf, err := s.OpenEdit(idA)
	require.NoError(t, err)

	buf.CustomerName = "Changed"
	assert.Equal(t, "Acme Ltd", s.Results()[0].CustomerName)

	_, err = s.OpenEdit(999)
	assert.ErrorIs(t, err, ErrNotInResults)
}

func TestCommitEditReloadsResults(t *testing.T) {
	mock := remote.NewMockClient()
	idA, _ := seedMock(t, mock)
	s := NewSearchService(mock)

	_, err := s.Search(context.Background(), "acme")
	require.NoError(t, err)

	buf, err := s.OpenEdit(idA)
	require.NoError(t, err)
	buf.CustomerName = "Acme Renamed"

	res, err := s.CommitEdit(context.Background(), idA, buf)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Acme Renamed", res.Records[0].CustomerName)
}

func TestCommitEditFailureKeepsHeldList(t *testing.T) {
	mock := remote.NewMockClient()
	idA, _ := seedMock(t, mock)
	s := NewSearchService(mock)

	_, err := s.Search(context.Background(), "acme")
	require.NoError(t, err)

	buf, err := s.OpenEdit(idA)
	require.NoError(t, err)
	buf.CustomerName = "Acme Renamed"

	mock.FailUpdate = true
	_, err = s.CommitEdit(context.Background(), idA, buf)
	require.Error(t, err)

	held := s.Results()
	require.Len(t, held, 1)
	assert.Equal(t, "Acme Ltd", held[0].CustomerName)
}

func TestDeleteRemovesRowOnSuccessOnly(t *testing.T) {
	mock := remote.NewMockClient()
	idA, idB := seedMock(t, mock)
	s := NewSearchService(mock)

	_, err := s.Search(context.Background(), "INV")
	require.NoError(t, err)
	require.Len(t, s.Results(), 2)

	mock.FailDelete = true
	require.Error(t, s.Delete(context.Background(), idA))
	assert.Len(t, s.Results(), 2)

	mock.FailDelete = false
	require.NoError(t, s.Delete(context.Background(), idA))
	held := s.Results()
	require.Len(t, held, 1)
	assert.Equal(t, idB, held[0].ID)
}
