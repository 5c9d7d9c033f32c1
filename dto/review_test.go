package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbwdog/hata-masazhu/shared"
)

func TestIsValidRating(t *testing.T) {
	for r := 1; r <= 5; r++ {
		assert.True(t, IsValidRating(r), "rating %d", r)
	}

	invalid := []interface{}{
		0, 6, -1, 100,
		4.5, 0.9, 5.0001,
		"5", nil, true,
		json.Number("4.5"), json.Number("abc"),
	}
	for _, v := range invalid {
		assert.False(t, IsValidRating(v), "value %v", v)
	}

	assert.True(t, IsValidRating(float64(3)))
	assert.True(t, IsValidRating(int64(5)))
	assert.True(t, IsValidRating(json.Number("1")))
}

func TestSubmitReviewValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitReviewRequest
		wantErr string
	}{
		{
			name: "five stars without reason is accepted",
			req:  SubmitReviewRequest{Name: "Olena", Rating: 5},
		},
		{
			name: "low rating with reason is accepted",
			req:  SubmitReviewRequest{Name: "Ivan", Rating: 2, Reason: "довго чекав"},
		},
		{
			name:    "low rating without reason is rejected",
			req:     SubmitReviewRequest{Name: "Ivan", Rating: 2},
			wantErr: MsgReasonRequired,
		},
		{
			name:    "whitespace-only reason counts as empty",
			req:     SubmitReviewRequest{Name: "Ivan", Rating: 3, Reason: "   \t "},
			wantErr: MsgReasonRequired,
		},
		{
			name:    "missing name is rejected",
			req:     SubmitReviewRequest{Rating: 5},
			wantErr: MsgNameRequired,
		},
		{
			name:    "control-only name counts as empty",
			req:     SubmitReviewRequest{Name: "\x00\x01", Rating: 5},
			wantErr: MsgNameRequired,
		},
		{
			name:    "zero rating is rejected",
			req:     SubmitReviewRequest{Name: "Olena"},
			wantErr: MsgInvalidRating,
		},
		{
			name:    "rating above five is rejected",
			req:     SubmitReviewRequest{Name: "Olena", Rating: 6},
			wantErr: MsgInvalidRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize()
			err := tt.req.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			appErr, ok := shared.GetAppError(err)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.StatusCode)
			assert.Equal(t, tt.wantErr, appErr.Message)
		})
	}
}

func TestNormalizeBoundsFields(t *testing.T) {
	long := make([]rune, 0, 2000)
	for i := 0; i < 2000; i++ {
		long = append(long, 'а')
	}

	req := SubmitReviewRequest{Name: "  Оля\x00  ", Rating: 4, Reason: string(long)}
	req.Normalize()

	assert.Equal(t, "Оля", req.Name)
	assert.Len(t, []rune(req.Reason), shared.MaxReasonLen)
	assert.NoError(t, req.Validate())
}
