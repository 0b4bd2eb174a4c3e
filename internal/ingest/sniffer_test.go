package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected Format
	}{
		{
			name:     "no marker defaults to generic",
			lines:    []string{"User,Source,Date,Amount,Category,Description", "bob,manual,2024-01-05,-42.50,,Lunch"},
			expected: FormatGeneric,
		},
		{
			name:     "walletA marker in header",
			lines:    []string{"支付宝交易记录明细查询", "姓名:张三", "交易时间,分类,交易对方,商品说明,金额,收/支,交易状态"},
			expected: FormatWalletA,
		},
		{
			name:     "walletW marker in header",
			lines:    []string{"微信支付账单明细", "昵称:小王", "交易时间,交易类型,交易对方,收/支,金额(元),当前状态"},
			expected: FormatWalletW,
		},
		{
			name: "marker beyond the sniff window is ignored",
			lines: []string{
				"r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "r9", "r10",
				"支付宝交易记录明细查询",
			},
			expected: FormatGeneric,
		},
		{
			name:     "first marker wins",
			lines:    []string{"支付宝导出", "微信支付导出"},
			expected: FormatWalletA,
		},
		{
			name:     "empty input is generic",
			lines:    nil,
			expected: FormatGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sniff(tt.lines))
		})
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "generic", FormatGeneric.String())
	assert.Equal(t, "walletA", FormatWalletA.String())
	assert.Equal(t, "walletW", FormatWalletW.String())
}
