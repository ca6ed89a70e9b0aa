// Package restyutil dumps the http exchanges of a resty client, useful
// when a source's markup changes under it.
package restyutil

import (
	"fmt"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type Output interface {
	Write(id string, contents string)
}

// Dump writes every response the client receives to output, together with
// the request that caused it. A nil output leaves the client untouched.
func Dump(client *resty.Client, prefix string, output Output) {
	if output == nil {
		return
	}
	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&idcounter, 1)
		output.Write(fmt.Sprintf("%s-%04d.txt", prefix, id), formatHttpMessage(res))
		return nil
	})
}
