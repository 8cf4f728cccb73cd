package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/techhub-shop/techhub/internal/models"
)

func TestCreateReview(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/reviews", map[string]interface{}{
		"id_user":   1,
		"id_tovara": 2,
		"otcenka":   5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Review
	decodeJSON(t, rec, &resp)
	require.NotZero(t, resp.ID)
	require.EqualValues(t, 1, resp.UserID)
	require.EqualValues(t, 2, resp.ProductID)
	require.Equal(t, 5, resp.Score)

	// имена полей внешнего API
	require.Contains(t, rec.Body.String(), "id_tovara")
	require.Contains(t, rec.Body.String(), "otcenka")
}

func TestCreateReviewScoreBounds(t *testing.T) {
	env := newTestEnv(t)

	for _, score := range []int{0, 6, -1} {
		rec := env.doJSON(http.MethodPost, "/reviews", map[string]interface{}{
			"id_user":   1,
			"id_tovara": 2,
			"otcenka":   score,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code, fmt.Sprintf("score %d", score))
	}

	for _, score := range []int{1, 5} {
		rec := env.doJSON(http.MethodPost, "/reviews", map[string]interface{}{
			"id_user":   1,
			"id_tovara": 2,
			"otcenka":   score,
		})
		require.Equal(t, http.StatusOK, rec.Code, fmt.Sprintf("score %d", score))
	}
}

func TestListReviewsByProduct(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		rec := env.doJSON(http.MethodPost, "/reviews", map[string]interface{}{
			"id_user":   1,
			"id_tovara": 7,
			"otcenka":   i + 1,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := env.doJSON(http.MethodPost, "/reviews", map[string]interface{}{
		"id_user":   1,
		"id_tovara": 8,
		"otcenka":   4,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, "/reviews/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []models.Review
	decodeJSON(t, rec, &reviews)
	require.Len(t, reviews, 3)
	// порядок вставки сохраняется
	for i, rev := range reviews {
		require.Equal(t, i+1, rev.Score)
		require.EqualValues(t, 7, rev.ProductID)
	}
}

// Повторная оценка того же товара тем же пользователем не отклоняется.
func TestDuplicateReviewAllowed(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		rec := env.doJSON(http.MethodPost, "/reviews", map[string]interface{}{
			"id_user":   1,
			"id_tovara": 2,
			"otcenka":   3,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var count int64
	require.NoError(t, env.DB.Model(&models.Review{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}
