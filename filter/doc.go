// Package filter implements neighborhood effects on video.Video buffers.
//
// Effects read outside the frame through video.Video.AtMirrored, so no
// effect carries edge-case branches. The mirror extends a dimension by at
// most its length minus one, which bounds every radius:
//
//	blur := filter.NewBoxBlurEffect(2) // needs width and height >= 3
//
// Effects can be used alone or composed:
//
//	chain := filter.NewEffectChain()
//	chain.AddEffect(filter.NewTemporalSmoothEffect(1))
//	chain.AddEffect(filter.NewSharpenEffect(0.5, 1))
//	out, err := chain.Apply(v)
//
// Every effect returns a new buffer and leaves its input untouched.
package filter
