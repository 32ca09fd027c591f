package discord

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svml/uriage-bot/internal/domain/report"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{report.ErrInvalidAmount, "⚠️ 金額は半角数字で入力してください。"},
		{report.ErrInvalidDate, "⚠️ 日付の形式が正しくありません。(例: 7/7)"},
		{report.ErrStaleReport, "⚠️ 元の報告データが見つかりませんでした。新規で報告してください。"},
		{report.ErrNotFound, "エラー: 元の報告データが見つかりませんでした。"},
		{report.ErrForbidden, "⚠️ この操作を行う権限がありません。"},
		{errors.New("opaque"), "エラーが発生し、処理を完了できませんでした。"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, userMessage(tt.err))
	}

	// Wrapped domain errors map the same way.
	wrapped := fmt.Errorf("parse submission: %w", report.ErrInvalidAmount)
	assert.Equal(t, "⚠️ 金額は半角数字で入力してください。", userMessage(wrapped))
}

func TestDisplayedDatePattern(t *testing.T) {
	m := displayedDatePattern.FindStringSubmatch("📊 売上報告 (7/7)")
	require.NotNil(t, m)
	assert.Equal(t, "7/7", m[1])

	m = displayedDatePattern.FindStringSubmatch("📊 売上報告 (12/31)")
	require.NotNil(t, m)
	assert.Equal(t, "12/31", m[1])

	assert.Nil(t, displayedDatePattern.FindStringSubmatch("no date here"))
}
