package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/testutil"
)

func TestCategoryService_AddDuplicateReturnsStoredRow(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	svc := NewCategoryService(categoryRepo)

	first, err := svc.Add("Groceries")
	require.NoError(t, err)

	second, err := svc.Add("groceries")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Groceries", second.Name)
	require.Len(t, categoryRepo.Categories, 1)
}

func TestCategoryService_AddRequiresName(t *testing.T) {
	svc := NewCategoryService(testutil.NewMockCategoryRepository())

	_, err := svc.Add("   ")

	assert.ErrorIs(t, err, domain.ErrNameRequired)
}

func TestCategoryService_AddBatchSkipsBlanks(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	svc := NewCategoryService(categoryRepo)

	attempted, err := svc.AddBatch([]string{"Groceries", "", "  ", "Utilities", "groceries"})

	require.NoError(t, err)
	assert.Equal(t, 3, attempted)
	assert.Len(t, categoryRepo.Categories, 2)
}
