// Package consensus implements the reducer: it takes the per-provider
// results of one logical RPC call and folds them into a single Ok/Err
// outcome under a caller-chosen strategy.
package consensus

import (
	"crypto/sha256"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/multierr"

	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

var canonicalJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Strategy is the ConsensusStrategy sum type: either byte-identical
// equality across every success, or agreement among at least k replies.
type Strategy struct {
	Threshold int // 0 means Equality; >=1 means Threshold(k)
}

func Equality() Strategy       { return Strategy{Threshold: 0} }
func Threshold(k int) Strategy { return Strategy{Threshold: k} }

// Outcome is one provider's raw result before reduction: exactly one of
// Value/Err is set.
type Outcome struct {
	API   provider.RpcApi
	Value []byte // canonical-ready bytes, e.g. the parsed result re-marshaled
	Err   error
}

// Reduce applies strategy to outcomes and returns the representative value
// bytes, or an error: either the shared error across all failures
// (ConsistentError, reported as rpcerr.Text) or InconsistentResponse.
func Reduce(outcomes []Outcome, strategy Strategy) ([]byte, error) {
	if len(outcomes) == 0 {
		return nil, rpcerr.Validation("consensus: no outcomes to reduce")
	}
	if strategy.Threshold > len(outcomes) {
		return nil, rpcerr.Validation("consensus: threshold %d exceeds provider count %d", strategy.Threshold, len(outcomes))
	}

	var successes []Outcome
	var failures []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failures = append(failures, o)
		} else {
			successes = append(successes, o)
		}
	}

	k := strategy.Threshold
	if k == 0 {
		k = len(outcomes) // Equality requires every success to agree
	}

	if len(successes) < k {
		if allErrorsEqual(failures) && len(successes) == 0 {
			return nil, rpcerr.Text("consistent error: %v", multierr.Combine(errsOf(failures)...))
		}
		return nil, inconsistent(outcomes)
	}

	groups := groupByHash(successes)
	best := largestGroup(groups)
	if len(best) >= k {
		return best[0].Value, nil
	}
	return nil, inconsistent(outcomes)
}

func errsOf(outcomes []Outcome) []error {
	errs := make([]error, 0, len(outcomes))
	for _, o := range outcomes {
		errs = append(errs, o.Err)
	}
	return errs
}

func allErrorsEqual(failures []Outcome) bool {
	if len(failures) == 0 {
		return false
	}
	first := failures[0].Err.Error()
	for _, f := range failures[1:] {
		if f.Err.Error() != first {
			return false
		}
	}
	return true
}

// canonicalize re-encodes arbitrary JSON bytes with sorted keys and no
// whitespace so byte-for-byte comparison is insensitive to key order and
// formatting: two providers returning the same JSON with different key
// order or whitespace must still compare equal.
func canonicalize(raw []byte) ([]byte, error) {
	var v interface{}
	if err := canonicalJSON.Unmarshal(raw, &v); err != nil {
		return nil, rpcerr.Parse("consensus: cannot canonicalize response: %v", err)
	}
	return canonicalJSON.Marshal(sortKeys(v))
}

// sortKeys walks a decoded JSON value and converts every map into a
// sorted-key representation so jsoniter's marshal output is stable.
func sortKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(orderedMap, 0, len(keys))
		for _, k := range keys {
			out = append(out, kv{k, sortKeys(t[k])})
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = sortKeys(e)
		}
		return out
	default:
		return t
	}
}

type kv struct {
	Key   string
	Value interface{}
}
type orderedMap []kv

func (m orderedMap) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, p := range m {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyBytes, err := canonicalJSON.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		valBytes, err := canonicalJSON.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyBytes...)
		buf = append(buf, ':')
		buf = append(buf, valBytes...)
	}
	buf = append(buf, '}')
	return buf, nil
}

func hashOf(raw []byte) ([32]byte, error) {
	canon, err := canonicalize(raw)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(canon), nil
}

func groupByHash(successes []Outcome) map[[32]byte][]Outcome {
	groups := make(map[[32]byte][]Outcome)
	for _, o := range successes {
		h, err := hashOf(o.Value)
		if err != nil {
			// Unparseable bytes form their own singleton group keyed by the
			// raw bytes' hash so they never spuriously match anything else.
			h = sha256.Sum256(o.Value)
		}
		groups[h] = append(groups[h], o)
	}
	return groups
}

func largestGroup(groups map[[32]byte][]Outcome) []Outcome {
	var best []Outcome
	for _, g := range groups {
		if len(g) > len(best) {
			best = g
		}
	}
	return best
}

func inconsistent(outcomes []Outcome) error {
	providers := make([]rpcerr.ProviderOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		err := o.Err
		if err == nil {
			err = rpcerr.Text("ok")
		}
		providers = append(providers, rpcerr.ProviderOutcome{Provider: o.API.URL, Err: err})
	}
	return rpcerr.Inconsistent(providers)
}
