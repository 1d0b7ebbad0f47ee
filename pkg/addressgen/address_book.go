package addressgen

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

// AddressMap maps network names to derived addresses.
type AddressMap map[string]string

// Equal returns whether both maps hold exactly the same entries.
func (m AddressMap) Equal(other AddressMap) bool {
	if len(m) != len(other) {
		return false
	}
	for network, addr := range m {
		if otherAddr, ok := other[network]; !ok || otherAddr != addr {
			return false
		}
	}
	return true
}

// Networks returns the network names of the map in lexicographic order.
func (m AddressMap) Networks() []string {
	networks := make([]string, 0, len(m))
	for network := range m {
		networks = append(networks, network)
	}
	sort.Strings(networks)
	return networks
}

// Copy returns a shallow copy of the map.
func (m AddressMap) Copy() AddressMap {
	cp := make(AddressMap, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// AddressBook derives one address per network of its catalog from a seed
// phrase.
type AddressBook struct {
	formatter *Formatter
	catalog   []string
}

// Option customizes an AddressBook.
type Option func(*AddressBook)

// WithFormatter makes the book use a custom network table.
func WithFormatter(f *Formatter) Option {
	return func(b *AddressBook) {
		if f != nil {
			b.formatter = f
		}
	}
}

// WithCatalog makes the book derive addresses for the given ordered list of
// networks instead of the default one.
func WithCatalog(catalog []string) Option {
	return func(b *AddressBook) {
		b.catalog = append([]string{}, catalog...)
	}
}

// NewAddressBook returns an AddressBook using the built-in table and
// catalog unless overridden by opts.
func NewAddressBook(opts ...Option) *AddressBook {
	b := &AddressBook{
		formatter: NewFormatter(),
		catalog:   DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Catalog returns a copy of the ordered networks of the book.
func (b *AddressBook) Catalog() []string {
	return append([]string{}, b.catalog...)
}

// Formatter returns the network table used by the book.
func (b *AddressBook) Formatter() *Formatter {
	return b.formatter
}

// DeriveAll returns the address of every catalog network for seed. The same
// seed always yields the same map.
func (b *AddressBook) DeriveAll(seed []string) AddressMap {
	addresses := make(AddressMap, len(b.catalog))
	for i, network := range b.catalog {
		addresses[network] = b.derive(seed, network, i)
	}
	return addresses
}

// Derive returns the address of a single catalog network. The second value
// is false if network is not part of the catalog.
func (b *AddressBook) Derive(seed []string, network string) (string, bool) {
	ordinal := -1
	for i, n := range b.catalog {
		if n == network {
			ordinal = i
		}
	}
	if ordinal < 0 {
		return "", false
	}
	return b.derive(seed, network, ordinal), true
}

func (b *AddressBook) derive(seed []string, network string, ordinal int) string {
	rng := NewRand(Hash(seed, network, ordinal))
	addr := b.formatter.Format(network, rng)

	log.WithFields(log.Fields{
		"network": network,
		"ordinal": ordinal,
		"length":  len(addr),
	}).Trace("derived address")

	return addr
}

// DeriveAll derives the addresses of seed for the given ordered catalog with
// the built-in network table.
func DeriveAll(seed []string, catalog []string) AddressMap {
	return NewAddressBook(WithCatalog(catalog)).DeriveAll(seed)
}
