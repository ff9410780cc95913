package vocab

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint identifies the inputs of one extraction.
type Fingerprint string

// fingerprintOf hashes everything that can change the compiler's answer: the
// stylesheet text and resolved path, the config selector and the compiler
// command. The working directory is covered through the resolved path.
func fingerprintOf(req Request, command []string) Fingerprint {
	data, _ := json.Marshal(struct {
		Styles     string         `json:"styles"`
		StylesPath *string        `json:"stylesPath"`
		Config     ConfigSelector `json:"config"`
		Cwd        string         `json:"cwd"`
		Command    []string       `json:"command"`
	}{req.Styles, req.StylesPath, req.Config, req.Cwd, command})

	sum := sha256.Sum256(data)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// Cache holds the most recent vocabulary only. Putting a new fingerprint
// evicts the previous entry. Cache is not safe for concurrent use.
type Cache struct {
	fingerprint Fingerprint
	vocabulary  Vocabulary
	set         bool
}

func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached vocabulary if fp matches the stored entry.
func (c *Cache) Get(fp Fingerprint) (Vocabulary, bool) {
	if !c.set || c.fingerprint != fp {
		return Vocabulary{}, false
	}
	return c.vocabulary, true
}

// Put replaces the cached entry.
func (c *Cache) Put(fp Fingerprint, v Vocabulary) {
	c.fingerprint = fp
	c.vocabulary = v
	c.set = true
}
