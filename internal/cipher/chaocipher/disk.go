// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chaocipher

// =============================================================================
// DISKS
// =============================================================================

// Disks is the rotor state of one Chaocipher run: a left (cipher) disk and a
// right (plain) disk holding permutations of the same symbols.
//
// A Disks value is owned by a single call and must not be shared.
type Disks struct {
	left  []rune
	right []rune
	nadir int
}

// NewDisks seeds the two disks. Both strings must hold the same set of
// unique symbols; Run guarantees that before calling it.
func NewDisks(left, right string) *Disks {
	l := []rune(left)
	return &Disks{
		left:  l,
		right: []rune(right),
		nadir: len(l) / 2,
	}
}

// Left returns a snapshot of the cipher disk.
func (d *Disks) Left() string { return string(d.left) }

// Right returns a snapshot of the plain disk.
func (d *Disks) Right() string { return string(d.right) }

// Len returns the number of symbols on each disk.
func (d *Disks) Len() int { return len(d.left) }

// Encipher maps one plaintext symbol and advances both disks.
// It returns the index the symbol was found at on the plain disk.
// ok is false when the symbol is not on the disk; state is then untouched.
func (d *Disks) Encipher(p rune) (c rune, index int, ok bool) {
	index = indexOf(d.right, p)
	if index < 0 {
		return 0, -1, false
	}
	c = d.left[index]
	d.permute(c, p)
	return c, index, true
}

// Decipher maps one ciphertext symbol and advances both disks.
// It returns the index the symbol was found at on the cipher disk.
func (d *Disks) Decipher(c rune) (p rune, index int, ok bool) {
	index = indexOf(d.left, c)
	if index < 0 {
		return 0, -1, false
	}
	p = d.right[index]
	d.permute(c, p)
	return p, index, true
}

// permute applies the left and right disk rules. Both directions drive it
// with the same (cipher, plain) pair.
func (d *Disks) permute(c, p rune) {
	// Left: cipher symbol to the zenith, then zenith+1 drops to the nadir.
	rotateTo(d.left, c)
	move(d.left, 1, d.nadir)

	// Right: plain symbol to the zenith, one extra turn, then zenith+2
	// drops to the nadir.
	rotateTo(d.right, p)
	rotateTo(d.right, d.right[1%len(d.right)])
	move(d.right, 2, d.nadir)
}

// =============================================================================
// HELPERS
// =============================================================================

func indexOf(disk []rune, r rune) int {
	for i, x := range disk {
		if x == r {
			return i
		}
	}
	return -1
}

// rotateTo turns disk in place so that r sits at index 0.
func rotateTo(disk []rune, r rune) {
	i := indexOf(disk, r)
	if i <= 0 {
		return
	}
	rotated := make([]rune, 0, len(disk))
	rotated = append(rotated, disk[i:]...)
	rotated = append(rotated, disk[:i]...)
	copy(disk, rotated)
}

// move removes the element at from and reinserts it at to, shifting the
// elements in between. Out-of-range positions leave disk untouched.
func move(disk []rune, from, to int) {
	if from == to || from >= len(disk) || to >= len(disk) || from < 0 || to < 0 {
		return
	}
	x := disk[from]
	if from < to {
		copy(disk[from:to], disk[from+1:to+1])
	} else {
		copy(disk[to+1:from+1], disk[to:from])
	}
	disk[to] = x
}
