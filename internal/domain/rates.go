package domain

import (
	"fmt"
	"math"
)

// ReplyRate is replies over contacted as a percentage rounded to 2 decimals
func ReplyRate(replies, contacted int64) float64 {
	return percentage(replies, contacted)
}

// PositiveReplyRate is positive replies over replies as a percentage rounded to 2 decimals
func PositiveReplyRate(positive, replies int64) float64 {
	return percentage(positive, replies)
}

func percentage(numerator, denominator int64) float64 {
	if denominator <= 0 || numerator <= 0 {
		return 0
	}
	return Round(float64(numerator)/float64(denominator)*100, 2)
}

// Round rounds half away from zero to the given number of decimals
func Round(value float64, decimals int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

// AutoReplyRatio renders automatic against human replies as "x.x:1"
func AutoReplyRatio(autoReplies, totalReplies int64) string {
	human := totalReplies - autoReplies
	if human <= 0 {
		return "0:0"
	}
	if autoReplies < 0 {
		autoReplies = 0
	}
	return fmt.Sprintf("%.1f:1", float64(autoReplies)/float64(human))
}
