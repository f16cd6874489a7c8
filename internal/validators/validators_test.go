package validators

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Passw0rd":     true,
		"Sh0rt":        false,
		"alllower1":    false,
		"ALLUPPER1":    false,
		"NoDigitsHere": false,
		"Ünïcode1a":    true,
	}
	for p, want := range cases {
		assert.Equal(t, want, IsStrongPassword(p), p)
	}
}

func TestRegisterBindingRule(t *testing.T) {
	require.NoError(t, Register())

	type req struct {
		Password string `binding:"required,strongpassword"`
	}
	assert.NoError(t, binding.Validator.ValidateStruct(&req{Password: "Passw0rd"}))
	assert.Error(t, binding.Validator.ValidateStruct(&req{Password: "weak"}))
}

type stubResolver struct {
	mx    map[string][]*net.MX
	ips   map[string][]net.IPAddr
	calls int
	block bool
}

func (r *stubResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	r.calls++
	if r.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if mx, ok := r.mx[name]; ok {
		return mx, nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: name, IsNotFound: true}
}

func (r *stubResolver) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	if r.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if ips, ok := r.ips[host]; ok {
		return ips, nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

func TestEmailDomainChecker(t *testing.T) {
	r := &stubResolver{
		mx:  map[string][]*net.MX{"mail.test": {{Host: "mx.mail.test.", Pref: 10}}},
		ips: map[string][]net.IPAddr{"web.test": {{IP: net.IPv4(10, 0, 0, 1)}}},
	}
	c := NewEmailDomainChecker(r, time.Second)
	ctx := context.Background()

	assert.True(t, c.Check(ctx, "officer@mail.test"))
	assert.True(t, c.Check(ctx, "officer@web.test"))
	assert.False(t, c.Check(ctx, "officer@nowhere.test"))

	calls := r.calls
	assert.False(t, c.Check(ctx, "no-at-sign"))
	assert.False(t, c.Check(ctx, "@mail.test"))
	assert.False(t, c.Check(ctx, "officer@"))
	assert.Equal(t, calls, r.calls)
}

func TestEmailDomainCheckerTimesOut(t *testing.T) {
	c := NewEmailDomainChecker(&stubResolver{block: true}, 20*time.Millisecond)

	start := time.Now()
	assert.False(t, c.Check(context.Background(), "officer@slow.test"))
	assert.Less(t, time.Since(start), time.Second)
}
