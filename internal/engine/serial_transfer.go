package engine

import "github.com/wokuno/ferox/internal/genome"

const geneTransferContactRange = 1

// checkGeneTransfer is serial step 8b (C3/C7): scan for near-contact between
// distinct colonies of any lineage and roll horizontal gene transfer
// between them, per spec §4.3. Unlike recombination, HGT requires no shared
// lineage and no genome-distance gate — it is the mechanism by which
// unrelated colonies pick up each other's traits on contact. The donor is
// the larger of the two colonies (more cells emitting plasmids into the
// shared border); the recipient's own GeneTransferRate sets both the trigger
// chance and the transferStrength passed to genome.Transfer.
func (w *World) checkGeneTransfer() {
	actives := activeColonies(w.Colonies)
	borders := make(map[int32][][2]int, len(actives))
	for _, c := range actives {
		borders[c.ID] = w.collectBorderCells(c.ID)
	}

	for i := 0; i < len(actives); i++ {
		a := actives[i]
		if !a.Active || a.CellCount == 0 {
			continue
		}
		for j := i + 1; j < len(actives); j++ {
			b := actives[j]
			if !b.Active || b.CellCount == 0 {
				continue
			}
			if !withinContactRange(borders[a.ID], borders[b.ID], geneTransferContactRange) {
				continue
			}

			donor, recipient := a, b
			if b.CellCount > a.CellCount {
				donor, recipient = b, a
			}

			if w.WorldRNG.Float64() >= recipient.Genome.GeneTransferRate {
				continue
			}
			recipient.Genome = genome.Transfer(donor.Genome, recipient.Genome, recipient.Genome.GeneTransferRate, w.WorldRNG)
		}
	}
}
