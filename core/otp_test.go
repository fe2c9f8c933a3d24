package core

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateResetOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := GenerateResetOTP()

		require.Len(t, otp, 5)

		n, err := strconv.Atoi(otp)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 10000)
		require.LessOrEqual(t, n, 99999)
	}
}
