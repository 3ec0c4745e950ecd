// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"sort"
	"strings"
)

// =============================================================================
// CIPHER CATALOGUE
// =============================================================================

// KeyKind describes what configuration a cipher reads from a Request.
type KeyKind string

const (
	KeyNone     KeyKind = "none"
	KeyKeyword  KeyKind = "keyword"
	KeyAlphabet KeyKind = "alphabet"
	KeyRails    KeyKind = "rails"
)

// Info describes one cipher for listings and explanations.
type Info struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Aliases     []string `json:"aliases"`
	Key         KeyKind  `json:"key"`
	Summary     string   `json:"summary"`
	Explanation string   `json:"-"` // Markdown
}

var catalog = []Info{
	{
		Name:    Chaocipher,
		Title:   "Chaocipher",
		Aliases: []string{"chao"},
		Key:     KeyAlphabet,
		Summary: "Two rotating disks re-permuted after every letter",
		Explanation: `# Chaocipher

Invented by John F. Byrne in 1918 and kept secret until 2010.

Two **disks** hold the same symbols in different orders: the *left* disk
for ciphertext and the *right* disk for plaintext.

For every letter:

1. Find the plaintext letter on the right disk.
2. The letter at the **same position** on the left disk is the ciphertext.
3. Turn the left disk until that ciphertext letter is at the top (*zenith*),
   then drop the letter just after it to the middle (*nadir*).
4. Turn the right disk until the plaintext letter is at the top, turn it once
   more, then drop the third letter to the nadir.

Because the disks change after every letter, the same plaintext letter almost
never encrypts the same way twice.

Letters that are not on the disks are ignored.
`,
	},
	{
		Name:    RailFence,
		Title:   "Rail Fence",
		Aliases: []string{"rail", "rf", "rail-fence"},
		Key:     KeyRails,
		Summary: "Zig-zag transposition across N rails",
		Explanation: `# Rail Fence

A **transposition** cipher: letters are not replaced, only moved.

Write the message diagonally down and up across a number of *rails*:

    T . . . I . . . E . .
    . H . S . S . T . S .
    . . I . . . A . . . T

then read each rail left to right: ` + "`TIE HSSTS IAT`" + `.

A custom **order** reads the rails in a different sequence, for example
` + "`2,0,1`" + `. Both sides must agree on the number of rails and the order.

With fewer than two rails the text is left unchanged.
`,
	},
	{
		Name:    Playfair,
		Title:   "Playfair",
		Aliases: []string{"pf"},
		Key:     KeyKeyword,
		Summary: "Digraph substitution on a 5x5 key square",
		Explanation: `# Playfair

Invented by Charles Wheatstone in 1854 and promoted by Lord Playfair.

The keyword fills a **5x5 square** first, followed by the unused letters.
J shares a cell with I.

The message is split into pairs (*digraphs*). A doubled letter gets an
**X** between its halves and an odd last letter is padded with **X**:
` + "`HELLO`" + ` becomes ` + "`HE LX LO`" + `.

Each pair is replaced by one of three rules:

| Case        | Encrypt                          |
|-------------|----------------------------------|
| Same row    | letter to the right (wrapping)   |
| Same column | letter below (wrapping)          |
| Rectangle   | letter in own row, other's column |

Decryption moves left and up instead; the rectangle rule is its own inverse.
`,
	},
	{
		Name:    Vigenere,
		Title:   "Vigenère",
		Aliases: []string{"vig", "vigenère"},
		Key:     KeyKeyword,
		Summary: "Repeating-key shift cipher",
		Explanation: `# Vigenère

A **polyalphabetic** cipher described by Giovan Battista Bellaso in 1553.

The keyword is repeated under the message:

    P A L A V R A
    C H A V E C H

Each letter is shifted by its key letter (A=0 ... Z=25):
` + "`cipher = (plain + key) mod 26`" + `.

The lookup is the row of the key letter and the column of the plain letter in
the *tabula recta*. Decryption subtracts instead of adding.
`,
	},
	{
		Name:    ROT47,
		Title:   "ROT47",
		Aliases: []string{"rot"},
		Key:     KeyNone,
		Summary: "Rotate printable ASCII by 47",
		Explanation: `# ROT47

Every printable ASCII symbol from ` + "`!`" + ` (33) to ` + "`~`" + ` (126)
is rotated by 47 places inside that 94-symbol window.

Since 47 is half of 94, applying ROT47 twice gives back the original: the
same operation both encrypts and decrypts.

Spaces, control characters and non-ASCII letters pass through unchanged.
`,
	},
}

// Names returns the canonical cipher names in catalogue order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, info := range catalog {
		names[i] = info.Name
	}
	return names
}

// Catalog returns a copy of every cipher description.
func Catalog() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves a name or alias, case-insensitive.
func Lookup(name string) (Info, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, info := range catalog {
		if info.Name == name {
			return info, true
		}
		for _, alias := range info.Aliases {
			if alias == name {
				return info, true
			}
		}
	}
	return Info{}, false
}

// AllNames returns every accepted name and alias, sorted. Used for completion.
func AllNames() []string {
	var names []string
	for _, info := range catalog {
		names = append(names, info.Name)
		names = append(names, info.Aliases...)
	}
	sort.Strings(names)
	return names
}
