package store

import "context"

// FakeClient is a test double returning scripted responses and recording
// request bodies.
type FakeClient struct {
	// GetResponse is returned by Get.
	GetResponse Response

	// GetErr, if set, is returned by Get instead.
	GetErr error

	// PostResponses are consumed one per Post call; the last one repeats
	// once exhausted.
	PostResponses []Response

	// PostErr, if set, is returned by Post instead.
	PostErr error

	// GetCalls counts Get invocations.
	GetCalls int

	// PostBodies records every body passed to Post.
	PostBodies [][]byte

	postIndex int
}

// NewFakeClient creates a FakeClient with the given scripted responses.
func NewFakeClient(get Response, posts ...Response) *FakeClient {
	return &FakeClient{GetResponse: get, PostResponses: posts}
}

// Get returns the scripted GET response.
func (f *FakeClient) Get(ctx context.Context) (Response, error) {
	f.GetCalls++
	if f.GetErr != nil {
		return Response{}, f.GetErr
	}
	return f.GetResponse, nil
}

// Post records the body and returns the next scripted response.
func (f *FakeClient) Post(ctx context.Context, body []byte) (Response, error) {
	if f.PostErr != nil {
		return Response{}, f.PostErr
	}

	cp := make([]byte, len(body))
	copy(cp, body)
	f.PostBodies = append(f.PostBodies, cp)

	if len(f.PostResponses) == 0 {
		return Response{Status: 201}, nil
	}
	resp := f.PostResponses[f.postIndex]
	if f.postIndex < len(f.PostResponses)-1 {
		f.postIndex++
	}
	return resp, nil
}
