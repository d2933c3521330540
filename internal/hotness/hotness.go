// Package hotness tracks how frequently cache keys are requested.
// Hot questions earn a stretched response-cache TTL.
package hotness

type Interface interface {
	Inc(key string)
	Score(key string) float64
	Reset(keys ...string)
}
