package util

import "fmt"

// FormatTransactTime renders an exchange transaction time encoded as
// HHMMSSmmm (e.g. 93000000) as "09:30:00.000".
func FormatTransactTime(t int64) string {
	if t < 0 {
		return fmt.Sprintf("%d", t)
	}

	ms := t % 1000
	ss := (t / 1000) % 100
	mm := (t / 100000) % 100
	hh := t / 10000000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hh, mm, ss, ms)
}

// TransactTimeToMillis converts a HHMMSSmmm transaction time to milliseconds
// since midnight.
func TransactTimeToMillis(t int64) int64 {
	ms := t % 1000
	ss := (t / 1000) % 100
	mm := (t / 100000) % 100
	hh := t / 10000000

	return ((hh*60+mm)*60+ss)*1000 + ms
}

// MillisToTransactTime converts milliseconds since midnight to a HHMMSSmmm
// transaction time.
func MillisToTransactTime(ms int64) int64 {
	hh := ms / 3600000
	mm := (ms / 60000) % 60
	ss := (ms / 1000) % 60

	return hh*10000000 + mm*100000 + ss*1000 + ms%1000
}
