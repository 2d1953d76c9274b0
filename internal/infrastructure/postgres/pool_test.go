package postgres

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	ips []net.IP
	err error
}

func (f fakeResolver) LookupIP(context.Context, string, string) ([]net.IP, error) {
	return f.ips, f.err
}

func TestLookupIPv4(t *testing.T) {
	ctx := context.Background()

	ip, err := lookupIPv4(ctx, fakeResolver{}, "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = lookupIPv4(ctx, fakeResolver{}, "::1")
	assert.Error(t, err)

	ip, err = lookupIPv4(ctx, fakeResolver{ips: []net.IP{net.ParseIP("2001:db8::1"), net.ParseIP("192.0.2.10")}}, "db.example.com")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.10", ip)

	_, err = lookupIPv4(ctx, fakeResolver{ips: []net.IP{net.ParseIP("2001:db8::1")}}, "db.example.com")
	assert.Error(t, err)

	_, err = lookupIPv4(ctx, fakeResolver{err: errors.New("nxdomain")}, "db.example.com")
	assert.Error(t, err)
}
