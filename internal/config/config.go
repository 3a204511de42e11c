// Package config loads the declarative relay policy from HCL.
//
// A policy file names the client application and one relay block per
// permitted endpoint:
//
//	client = "/usr/bin/vpn-client"
//
//	relay "se-sto-001" {
//	  kind    = "entry"
//	  address = "203.0.113.5"
//	  port    = 443
//	  proto   = "tcp"
//	}
package config

import (
	"fmt"
	"net/netip"
	"strings"

	"grimm.is/relayfw/internal/policy"
)

// Config is the root of a policy file.
type Config struct {
	// Client is the default client application path for all relays.
	Client string  `hcl:"client,optional"`
	Relays []Relay `hcl:"relay,block"`
}

// Relay describes one permitted relay endpoint.
type Relay struct {
	Name           string `hcl:"name,label"`
	Kind           string `hcl:"kind,optional"`           // "entry" or "exit"; empty keys the rule by name
	Address        string `hcl:"address"`
	Port           int    `hcl:"port"`
	Protocol       string `hcl:"proto,optional"`          // tcp (default) or udp
	Client         string `hcl:"client,optional"`         // overrides the top-level client
	Classification string `hcl:"classification,optional"` // baseline (default) or dns
	Description    string `hcl:"description,optional"`
}

// Validate checks the whole policy set. Errors carry the relay label.
func (c *Config) Validate() error {
	seenKind := map[string]string{}
	seenName := map[string]bool{}
	for _, r := range c.Relays {
		if seenName[r.Name] {
			return fmt.Errorf("relay %q: duplicate relay name", r.Name)
		}
		seenName[r.Name] = true

		if _, err := r.Descriptor(c.Client); err != nil {
			return fmt.Errorf("relay %q: %w", r.Name, err)
		}

		kind := strings.ToLower(r.Kind)
		if kind != "" {
			if kind != "entry" && kind != "exit" {
				return fmt.Errorf("relay %q: unknown kind %q (want entry or exit)", r.Name, r.Kind)
			}
			// Each kind carries one stable identity; a second relay of the
			// same kind would silently replace the first in the engine.
			if prev, dup := seenKind[kind]; dup {
				return fmt.Errorf("relay %q: kind %q already used by relay %q", r.Name, kind, prev)
			}
			seenKind[kind] = r.Name
		}
	}
	return nil
}

// Descriptor converts the relay block into a policy descriptor, applying
// the given default client path.
func (r Relay) Descriptor(defaultClient string) (policy.Descriptor, error) {
	addr, err := netip.ParseAddr(r.Address)
	if err != nil {
		return policy.Descriptor{}, fmt.Errorf("invalid address %q: %w", r.Address, err)
	}

	if r.Port < 1 || r.Port > 65535 {
		return policy.Descriptor{}, fmt.Errorf("port %d out of range 1-65535", r.Port)
	}

	protoName := r.Protocol
	if protoName == "" {
		protoName = "tcp"
	}
	proto, err := policy.ParseProtocol(protoName)
	if err != nil {
		return policy.Descriptor{}, err
	}

	className := r.Classification
	if className == "" {
		className = "baseline"
	}
	class, err := policy.ParseClassification(className)
	if err != nil {
		return policy.Descriptor{}, err
	}

	client := r.Client
	if client == "" {
		client = defaultClient
	}

	d := policy.Descriptor{
		Relay:    addr,
		Port:     uint16(r.Port),
		Protocol: proto,
		Client:   client,
		Class:    class,
	}
	if err := d.Validate(); err != nil {
		return policy.Descriptor{}, err
	}
	return d, nil
}
