package dnssec

import (
	"context"
	"strings"
	"time"

	"github.com/dnsscience/dnskit/internal/atomics"
	"github.com/dnsscience/dnskit/internal/concurrency"
	"github.com/dnsscience/dnskit/internal/dnserr"
	"github.com/dnsscience/dnskit/internal/transport"
	"github.com/dnsscience/dnskit/internal/wire"
)

// CollectionTimeout is the shared deadline for an entire resource
// collection pass, covering every DNSKEY/DS side query it issues.
const CollectionTimeout = 10 * time.Second

// zonesFor computes the zone list for a reply: each RRSIG's signerName and
// every ancestor up to (but not including) the root, plus the root itself.
func zonesFor(m *wire.Message) []string {
	seen := make(map[string]struct{})
	var zones []string
	add := func(z string) {
		key := strings.ToLower(z)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		zones = append(zones, z)
	}

	for _, a := range m.Answers {
		sig, ok := a.RData.(*wire.RRSIGRecord)
		if !ok {
			continue
		}
		for _, z := range ancestors(sig.SignerName) {
			add(z)
		}
	}
	add(".")
	return zones
}

// ancestors returns name and every ancestor zone up to but not including
// the root, e.g. "www.example.com." -> ["www.example.com.", "example.com.",
// "com."].
func ancestors(name string) []string {
	trimmed := strings.TrimSuffix(name, ".")
	if trimmed == "" {
		return nil
	}
	labels := strings.Split(trimmed, ".")
	var out []string
	for i := 0; i < len(labels); i++ {
		out = append(out, strings.Join(labels[i:], ".")+".")
	}
	return out
}

// collect fetches DNSKEY and, for every non-root zone, DS resources for
// every zone on m's signing path. Each (zone, record-type) pair is its own
// pool task, submitted without waiting for any other to finish, so the
// whole fan-out runs concurrently bounded only by the pool's worker count
// and limiter's issuance rate; all tasks are joined before any signature
// is verified.
func collect(ctx context.Context, exchanger transport.Client, limiter *concurrency.Limiter, m *wire.Message) ([]Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, CollectionTimeout)
	defer cancel()

	zones := zonesFor(m)
	resources := atomics.NewMap[string, Resource]()

	pool := concurrency.NewPool(0)
	defer pool.Close()

	type pending struct {
		zone string
		done <-chan error
	}
	tasks := make([]pending, 0, len(zones)*2)

	submit := func(zone string, qtype wire.Type) error {
		done, err := pool.SubmitAsync(ctx, func(ctx context.Context) error {
			answers, sig, err := fetchRRset(ctx, exchanger, limiter, zone, qtype)
			if err != nil {
				return err
			}
			resources.Update(zone, func(res Resource, ok bool) Resource {
				if !ok {
					res = Resource{Zone: zone}
				}
				if qtype == wire.TypeDNSKEY {
					res.DNSKEYAnswers = answers
					res.DNSKEYSig = sig
				} else {
					res.DSAnswers = answers
					res.DSSig = sig
				}
				return res
			})
			return nil
		})
		if err != nil {
			return err
		}
		tasks = append(tasks, pending{zone: zone, done: done})
		return nil
	}

	for _, zone := range zones {
		if err := submit(zone, wire.TypeDNSKEY); err != nil {
			return nil, dnserr.Wrap(dnserr.KindMissingKeys, "resource collection", err)
		}
		if zone != "." {
			if err := submit(zone, wire.TypeDS); err != nil {
				return nil, dnserr.Wrap(dnserr.KindMissingKeys, "resource collection", err)
			}
		}
	}

	var firstErr error
	for _, t := range tasks {
		if err := <-t.done; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	out := make([]Resource, 0, len(zones))
	for _, zone := range zones {
		res, _ := resources.Get(zone)
		out = append(out, res)
	}
	return out, nil
}

// fetchRRset issues (zone, qtype, IN, DNSSEC-OK=1) and requires the reply
// to carry response-code NOERROR, at least one record of qtype, and at
// least one covering RRSIG.
func fetchRRset(ctx context.Context, exchanger transport.Client, limiter *concurrency.Limiter, zone string, qtype wire.Type) ([]wire.Answer, *wire.RRSIGRecord, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, nil, dnserr.Wrap(dnserr.KindMissingKeys, "rate limiter", err)
	}

	query, err := wire.NewQuery(zone, qtype)
	if err != nil {
		return nil, nil, err
	}
	encoded, err := query.Encode(wire.EncodeOptions{DNSSECRequested: true})
	if err != nil {
		return nil, nil, err
	}

	raw, err := exchanger.Exchange(ctx, encoded)
	if err != nil {
		return nil, nil, dnserr.Wrap(dnserr.KindMissingKeys, zone, err)
	}
	reply, err := wire.Decode(raw)
	if err != nil {
		return nil, nil, dnserr.Wrap(dnserr.KindMissingKeys, zone, err)
	}
	if reply.Rcode != wire.RcodeSuccess {
		return nil, nil, dnserr.New(dnserr.KindMissingKeys, "non-NOERROR response for "+zone)
	}

	var answers []wire.Answer
	var sig *wire.RRSIGRecord
	for _, a := range reply.Answers {
		if a.Type == qtype {
			answers = append(answers, a)
			continue
		}
		if s, ok := a.RData.(*wire.RRSIGRecord); ok && s.TypeCovered == qtype {
			sig = s
		}
	}
	if len(answers) == 0 || sig == nil {
		return nil, nil, dnserr.New(dnserr.KindMissingKeys, "no "+qtype.String()+" records or covering RRSIG for "+zone)
	}
	return answers, sig, nil
}
