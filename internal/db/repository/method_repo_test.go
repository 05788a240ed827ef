package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
)

type mockMethodStore struct {
	mock.Mock
}

func (m *mockMethodStore) ListMethods(ctx context.Context) ([]MethodRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]MethodRow)
	return rows, args.Error(1)
}

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// rowsFromDefault renders the built-in table as database rows.
func rowsFromDefault() []MethodRow {
	methods := catalog.Default().Methods()
	rows := make([]MethodRow, 0, len(methods))
	for i, m := range methods {
		rows = append(rows, MethodRow{
			Name:                 m.Name,
			Category:             m.Category,
			PrescriptionRequired: m.PrescriptionRequired,
			MethodType:           text(m.Type),
			Duration:             text(m.Duration),
			Efficacy:             m.Efficacy,
			Notes:                m.Notes,
			SortOrder:            int32(i + 1),
		})
	}
	return rows
}

func TestMethodRepository_LoadCatalog(t *testing.T) {
	store := new(mockMethodStore)
	repo := NewMethodRepository(store)

	store.On("ListMethods", mock.Anything).Return(rowsFromDefault(), nil)

	cat, err := repo.LoadCatalog(context.Background())

	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Names(), cat.Names())
	assert.Equal(t, catalog.Default().Methods(), cat.Methods())
	assert.Equal(t, []string{catalog.ExternalCondoms, catalog.Vasectomy},
		cat.Universe(catalog.CategoryBarrier, catalog.CategorySurgical))
	store.AssertExpectations(t)
}

func TestMethodRepository_Empty(t *testing.T) {
	store := new(mockMethodStore)
	repo := NewMethodRepository(store)

	store.On("ListMethods", mock.Anything).Return([]MethodRow{}, nil)

	_, err := repo.LoadCatalog(context.Background())

	assert.ErrorIs(t, err, ErrNoMethods)
	store.AssertExpectations(t)
}

func TestMethodRepository_StoreError(t *testing.T) {
	store := new(mockMethodStore)
	repo := NewMethodRepository(store)

	boom := errors.New("connection refused")
	store.On("ListMethods", mock.Anything).Return(nil, boom)

	_, err := repo.LoadCatalog(context.Background())

	assert.ErrorIs(t, err, boom)
	store.AssertExpectations(t)
}

func TestMethodRepository_InvalidRows(t *testing.T) {
	store := new(mockMethodStore)
	repo := NewMethodRepository(store)

	rows := rowsFromDefault()
	rows[1].Name = rows[0].Name
	store.On("ListMethods", mock.Anything).Return(rows, nil)

	_, err := repo.LoadCatalog(context.Background())

	assert.ErrorIs(t, err, catalog.ErrDuplicateName)
	store.AssertExpectations(t)
}
