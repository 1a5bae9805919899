package render

// SetFailForTest forces the next renderDoc call to fail after
// building, exercising the fallback document path.
func (r *Renderer) SetFailForTest(err error) {
	r.failInject = err
}

// FallbackDoc exposes the fallback builder for structural tests.
var FallbackDoc = fallbackDoc
