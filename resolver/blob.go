package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/plwah/blobstore"
	"github.com/hupe1980/plwah/codec"
	"github.com/hupe1980/plwah/operation"
	"github.com/hupe1980/plwah/resource"
	"github.com/hupe1980/plwah/vector"
)

// ErrInvalidToken is returned when a token cannot be mapped to a blob name.
var ErrInvalidToken = errors.New("resolver: invalid token")

// Options configures BlobResolver.
type Options struct {
	// Prefix is prepended to every blob name.
	Prefix string

	// Controller charges fetched bytes against its IO budget and owns the
	// memory of decoded vectors.
	Controller *resource.Controller

	// MissingAsEmpty resolves a missing blob to an empty vector instead of
	// failing with blobstore.ErrNotFound.
	MissingAsEmpty bool

	// Name maps a token to a blob name. The default accepts strings and
	// fmt.Stringer values.
	Name func(token any) (string, error)
}

func defaultName(token any) (string, error) {
	switch t := token.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrInvalidToken, token)
	}
}

// BlobResolver returns a resolver that loads the blob named by the token and
// decodes it as a codec frame.
func BlobResolver(store blobstore.BlobStore, optFns ...func(o *Options)) operation.Resolver {
	opts := Options{Name: defaultName}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Name == nil {
		opts.Name = defaultName
	}

	return func(ctx context.Context, token any) (*vector.Vector, error) {
		name, err := opts.Name(token)
		if err != nil {
			return nil, err
		}

		data, err := store.Get(ctx, opts.Prefix+name)
		if err != nil {
			if opts.MissingAsEmpty && errors.Is(err, blobstore.ErrNotFound) {
				return vector.New(vector.WithController(opts.Controller)), nil
			}
			return nil, err
		}
		if err := opts.Controller.AcquireIO(ctx, len(data)); err != nil {
			return nil, err
		}
		return codec.DecodeVector(data, vector.WithController(opts.Controller))
	}
}

// PutVector encodes v with c and stores it under name. A nil codec selects
// codec.Default.
func PutVector(ctx context.Context, store blobstore.BlobStore, name string, v *vector.Vector, c codec.Codec) error {
	frame, err := codec.EncodeVector(v, c)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, frame)
}

// GetVector loads and decodes the vector stored under name.
func GetVector(ctx context.Context, store blobstore.BlobStore, name string, opts ...vector.Option) (*vector.Vector, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return codec.DecodeVector(data, opts...)
}
