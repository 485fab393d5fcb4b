package rbac

import (
	"context"
	"sync"
	"time"

	"go-pos/internal/rbac/infra"
	"go-pos/internal/store"
	"go-pos/internal/view"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultPolicyTTL = 30 * time.Second

type PolicyOptions struct {
	// TTL forces a reload of grants changed outside this process.
	TTL time.Duration
	Now func() time.Time
}

// Policy keeps every role's grants in one casbin enforcer shared by all
// requests. It is rebuilt from role_permissions on first use, after
// Invalidate and once TTL has passed.
type Policy struct {
	roles store.Table[Role]
	perms store.Table[Permission]
	links store.Table[RolePermission]
	ttl   time.Duration
	now   func() time.Time

	mu       sync.RWMutex
	enforcer *casbin.Enforcer
	loadedAt time.Time
	// version counts invalidations; loaded is the version the enforcer saw.
	version uint64
	loaded  uint64

	group  singleflight.Group
	logger *zap.Logger
}

func NewPolicy(roles store.Table[Role], perms store.Table[Permission], links store.Table[RolePermission], opts PolicyOptions) *Policy {
	if opts.TTL <= 0 {
		opts.TTL = DefaultPolicyTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Policy{
		roles:  roles,
		perms:  perms,
		links:  links,
		ttl:    opts.TTL,
		now:    opts.Now,
		logger: zap.L().Named("rbac.policy"),
	}
}

// Invalidate makes the next lookup reload the grants.
func (p *Policy) Invalidate() {
	p.mu.Lock()
	p.version++
	p.mu.Unlock()
}

// Codes returns the permission codes granted to roleID.
func (p *Policy) Codes(ctx context.Context, roleID string) ([]string, error) {
	e, err := p.current(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := e.GetImplicitPermissionsForUser(roleID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if len(r) == 2 {
			out = append(out, r[1])
		}
	}
	return out, nil
}

// Allowed reports whether roleID holds code.
func (p *Policy) Allowed(ctx context.Context, roleID, code string) (bool, error) {
	e, err := p.current(ctx)
	if err != nil {
		return false, err
	}
	return e.Enforce(roleID, code)
}

// Reload rebuilds the enforcer from the tables and swaps it in.
func (p *Policy) Reload(ctx context.Context) error {
	_, err, _ := p.group.Do("load", func() (any, error) {
		p.mu.RLock()
		version := p.version
		p.mu.RUnlock()

		e, err := p.build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.enforcer = e
		p.loadedAt = p.now()
		p.loaded = version
		p.mu.Unlock()
		return nil, nil
	})
	return err
}

func (p *Policy) current(ctx context.Context) (*casbin.Enforcer, error) {
	p.mu.RLock()
	e, fresh := p.enforcer, p.enforcer != nil && p.loaded == p.version && p.now().Sub(p.loadedAt) < p.ttl
	p.mu.RUnlock()
	if fresh {
		return e, nil
	}

	if err := p.Reload(ctx); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enforcer, nil
}

func (p *Policy) build(ctx context.Context) (*casbin.Enforcer, error) {
	roles, err := p.roles.FindMany(ctx, store.Query{})
	if err != nil {
		return nil, err
	}
	perms, err := p.perms.FindMany(ctx, store.Query{})
	if err != nil {
		return nil, err
	}
	links, err := p.links.FindMany(ctx, store.Query{})
	if err != nil {
		return nil, err
	}

	codes := make(map[int]string, len(perms))
	for _, perm := range perms {
		codes[perm.ID] = perm.Code
	}

	seen := make(map[[2]string]struct{})
	var rules [][]string
	grant := func(roleID, code string) {
		k := [2]string{roleID, code}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		rules = append(rules, []string{roleID, code})
	}
	for _, l := range links {
		if code, ok := codes[l.PermissionID]; ok {
			grant(l.RoleID, code)
		}
	}
	// a superadmin role holds every known code
	for _, r := range roles {
		if r.Superadmin {
			for _, perm := range perms {
				grant(r.ID, perm.Code)
			}
		}
	}

	e, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	if len(rules) > 0 {
		if _, err := e.AddPolicies(rules); err != nil {
			return nil, err
		}
	}
	p.logger.Debug("policy loaded", zap.Int("roles", len(roles)), zap.Int("rules", len(rules)))
	return e, nil
}

// Watch wraps next so committed role and permission changes invalidate the
// policy before the signal is forwarded.
func (p *Policy) Watch(next view.Invalidator) view.Invalidator {
	if next == nil {
		next = view.Noop()
	}
	return policyWatcher{policy: p, next: next}
}

type policyWatcher struct {
	policy *Policy
	next   view.Invalidator
}

func (w policyWatcher) Invalidate(ctx context.Context, scope string) {
	if scope == RoleResource || scope == PermissionResource {
		w.policy.Invalidate()
	}
	w.next.Invalidate(ctx, scope)
}
