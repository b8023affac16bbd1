package httputil_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/httputil"
)

func ExamplePolicy_Do() {
	policy := httputil.Policy{Attempts: 3, Delay: time.Millisecond}
	attempts := 0
	err := policy.Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return &httputil.RetryableError{Err: httputil.ErrNetwork}
		}
		return nil
	})
	fmt.Println(attempts, err)
	// Output: 3 <nil>
}

func ExamplePolicy_Do_exhausted() {
	policy := httputil.Policy{Attempts: 2, Delay: time.Millisecond}
	err := policy.Do(context.Background(), func() error {
		return &httputil.RetryableError{Err: httputil.ErrNetwork}
	})
	fmt.Println(jerrors.GetCode(err), errors.Is(err, httputil.ErrNetwork))
	// Output: UPSTREAM_RESOLUTION true
}
