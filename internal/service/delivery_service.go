package service

import (
	"context"
	"strings"
	"sync"

	"github.com/concho-nutrition/storefront/internal/config"
	"github.com/concho-nutrition/storefront/internal/constants"
)

// EligibilityResult describes whether an address qualifies for local
// delivery, plus the method card shown when it does. Seq echoes the
// applied check's sequence so the client can discard replies it has
// already superseded.
type EligibilityResult struct {
	IsLocalDeliveryAvailable bool                `json:"is_local_delivery_available"`
	Seq                      uint64              `json:"seq"`
	DeliveryMethod           *DeliveryMethodInfo `json:"delivery_method,omitempty"`
}

// DeliveryMethodInfo is the presentable local-delivery option.
type DeliveryMethodInfo struct {
	Name        string `json:"name"`
	Cost        string `json:"cost"`
	Description string `json:"description"`
}

// DeliveryDecision is a session's current delivery method plus the
// sequence number of the eligibility check that produced it.
type DeliveryDecision struct {
	Method   string `json:"method"`
	Eligible bool   `json:"eligible"`
	Seq      uint64 `json:"seq"`
}

// DeliveryService gates the local-delivery method on the customer
// address. Decisions are tracked per session so that out-of-order check
// responses cannot clobber a newer one: every check takes a sequence
// number and only the highest applied sequence wins.
type DeliveryService struct {
	localCity   string
	localStates map[string]struct{}
	methodName  string
	methodDesc  string

	mu        sync.Mutex
	nextSeq   uint64
	decisions map[string]*DeliveryDecision
}

// NewDeliveryService creates a delivery eligibility service.
func NewDeliveryService(cfg *config.DeliveryConfig) *DeliveryService {
	city := "san angelo"
	states := []string{"tx", "texas"}
	name := "Local Delivery"
	desc := "Free same-day delivery in San Angelo"
	if cfg != nil {
		if cfg.LocalCity != "" {
			city = cfg.LocalCity
		}
		if len(cfg.LocalStates) > 0 {
			states = cfg.LocalStates
		}
		if cfg.MethodName != "" {
			name = cfg.MethodName
		}
		if cfg.MethodDescription != "" {
			desc = cfg.MethodDescription
		}
	}
	stateSet := make(map[string]struct{}, len(states))
	for _, s := range states {
		stateSet[normalizeAddressPart(s)] = struct{}{}
	}
	return &DeliveryService{
		localCity:   normalizeAddressPart(city),
		localStates: stateSet,
		methodName:  name,
		methodDesc:  desc,
		decisions:   make(map[string]*DeliveryDecision),
	}
}

func normalizeAddressPart(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsEligible reports whether the city/state pair qualifies for local
// delivery. Comparison is case-insensitive with whitespace trimmed.
func (s *DeliveryService) IsEligible(city, state string) bool {
	if normalizeAddressPart(city) != s.localCity {
		return false
	}
	_, ok := s.localStates[normalizeAddressPart(state)]
	return ok
}

// Check runs an eligibility check for a session and applies the result
// to the session's delivery decision. The returned result reflects the
// session's decision after the check: a response superseded by a newer
// check is discarded. Any upstream failure must be reported by the
// caller as not eligible.
func (s *DeliveryService) Check(ctx context.Context, sessionID, city, state string) (*EligibilityResult, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seq := s.beginCheck()
	eligible := s.IsEligible(city, state)
	applied := s.applyCheck(sessionID, seq, eligible)

	result := &EligibilityResult{IsLocalDeliveryAvailable: applied.Eligible, Seq: applied.Seq}
	if applied.Eligible {
		result.DeliveryMethod = &DeliveryMethodInfo{
			Name:        s.methodName,
			Cost:        "FREE",
			Description: s.methodDesc,
		}
	}
	return result, nil
}

// beginCheck allocates the next sequence number for a session check.
func (s *DeliveryService) beginCheck() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// applyCheck records a check outcome unless a newer check already
// applied. When eligibility turns false while the session had picked
// local delivery, the decision falls back to shipping.
func (s *DeliveryService) applyCheck(sessionID string, seq uint64, eligible bool) DeliveryDecision {
	s.mu.Lock()
	defer s.mu.Unlock()

	decision, ok := s.decisions[sessionID]
	if !ok {
		decision = &DeliveryDecision{Method: constants.DeliveryMethodShipping}
		s.decisions[sessionID] = decision
	}
	if seq < decision.Seq {
		return *decision
	}
	decision.Seq = seq
	decision.Eligible = eligible
	if !eligible && decision.Method == constants.DeliveryMethodLocalDelivery {
		decision.Method = constants.DeliveryMethodShipping
	}
	return *decision
}

// SelectMethod sets the session's delivery method. Local delivery is
// only selectable while the latest check found the address eligible.
func (s *DeliveryService) SelectMethod(sessionID, method string) (*DeliveryDecision, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	if method != constants.DeliveryMethodShipping && method != constants.DeliveryMethodLocalDelivery {
		return nil, ErrInvalidDeliveryMethod
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	decision, ok := s.decisions[sessionID]
	if !ok {
		decision = &DeliveryDecision{Method: constants.DeliveryMethodShipping}
		s.decisions[sessionID] = decision
	}
	if method == constants.DeliveryMethodLocalDelivery && !decision.Eligible {
		return nil, ErrDeliveryNotEligible
	}
	decision.Method = method
	copied := *decision
	return &copied, nil
}

// Decision returns the session's current delivery decision. Sessions
// with no recorded checks default to shipping.
func (s *DeliveryService) Decision(sessionID string) DeliveryDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	if decision, ok := s.decisions[sessionID]; ok {
		return *decision
	}
	return DeliveryDecision{Method: constants.DeliveryMethodShipping}
}

// Forget drops a session's decision, used when the session's checkout
// completes.
func (s *DeliveryService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.decisions, sessionID)
}

// ResolveMethod validates a requested method against the address at a
// single point in time, for checkout submission. Local delivery with an
// ineligible address degrades to shipping rather than failing the
// order.
func (s *DeliveryService) ResolveMethod(method, city, state string) string {
	if method == constants.DeliveryMethodLocalDelivery && s.IsEligible(city, state) {
		return constants.DeliveryMethodLocalDelivery
	}
	return constants.DeliveryMethodShipping
}

// MethodLabel returns the display name for a delivery method.
func (s *DeliveryService) MethodLabel(method string) string {
	if method == constants.DeliveryMethodLocalDelivery {
		return s.methodName
	}
	return "Standard Shipping"
}
