package core

// Kind discriminates a Constraint node. The builder (internal/solver/build)
// switches on Kind to compile each node into zero or more handlers; the
// core package itself never interprets Kind beyond carrying it.
type Kind string

// Uniqueness regions (§4.3.1). Row/Column/Box are normally implied by
// Shape; Jigsaw/Windoku/Diagonal/DisjointSets/AllDifferent are explicit.
const (
	KindShape        Kind = "Shape"
	KindGiven        Kind = "Given"
	KindRow          Kind = "Row"
	KindColumn       Kind = "Column"
	KindBox          Kind = "Box"
	KindJigsaw       Kind = "Jigsaw"
	KindWindoku      Kind = "Windoku"
	KindDiagonal     Kind = "Diagonal"
	KindDisjointSets Kind = "DisjointSets"
	KindAllDifferent Kind = "AllDifferent"
)

// Sum constraints (§4.3.2).
const (
	KindCage          Kind = "Cage"
	KindSum           Kind = "Sum"
	KindArrow         Kind = "Arrow"
	KindDoubleArrow   Kind = "DoubleArrow"
	KindPillArrow     Kind = "PillArrow"
	KindBetween       Kind = "Between"
	KindLockout       Kind = "Lockout"
	KindSandwich      Kind = "Sandwich"
	KindXSum          Kind = "XSum"
	KindLittleKiller  Kind = "LittleKiller"
	KindRegionSumLine Kind = "RegionSumLine"
	KindSumLine       Kind = "SumLine"
	KindLunchbox      Kind = "Lunchbox"
)

// Binary & pairwise constraints (§4.3.3).
const (
	KindWhiteDot       Kind = "WhiteDot"
	KindBlackDot       Kind = "BlackDot"
	KindX              Kind = "X"
	KindV              Kind = "V"
	KindGreaterThan    Kind = "GreaterThan"
	KindAntiConsecutive Kind = "AntiConsecutive"
	KindStrictKropki   Kind = "StrictKropki"
	KindStrictXV       Kind = "StrictXV"
	KindPair           Kind = "Pair"
	KindPairX          Kind = "PairX"
	KindBinary         Kind = "Binary"
)

// Line / sequence constraints (§4.3.4).
const (
	KindThermo          Kind = "Thermo"
	KindWhisper          Kind = "Whisper"
	KindRenban           Kind = "Renban"
	KindModular          Kind = "Modular"
	KindEntropic         Kind = "Entropic"
	KindPalindrome       Kind = "Palindrome"
	KindZipper           Kind = "Zipper"
	KindValueIndexing    Kind = "ValueIndexing"
	KindIndexing         Kind = "Indexing"
	KindCountingCircles  Kind = "CountingCircles"
	KindSameValues       Kind = "SameValues"
	KindContainExact     Kind = "ContainExact"
	KindContainAtLeast   Kind = "ContainAtLeast"
	KindQuad             Kind = "Quad"
)

// State-machine constraints (§4.3.5).
const (
	KindRegex Kind = "Regex"
	KindNFA   Kind = "NFA"
)

// Outside clues requiring rank/ordering bookkeeping (§4.3.6). Sandwich,
// XSum and LittleKiller are sum-family (see above) but are also
// conceptually outside clues.
const (
	KindSkyscraper       Kind = "Skyscraper"
	KindHiddenSkyscraper Kind = "HiddenSkyscraper"
	KindNumberedRoom     Kind = "NumberedRoom"
	KindFullRank         Kind = "FullRank"
)

// Composite constraints (§4.3.7).
const (
	KindAnd Kind = "And"
	KindOr  Kind = "Or"
)

// Global counting (§4.3.8).
const (
	KindFullGridRequiredValues Kind = "FullGridRequiredValues"
)

// Direction of a line-read for outside clues and LittleKiller/FullRank.
type Direction string

const (
	DirLeftToRight Direction = "lr"
	DirRightToLeft Direction = "rl"
	DirTopToBottom Direction = "tb"
	DirBottomToTop Direction = "bt"
)

// FullRank tie-breaking mode names (§4.3.6). handlers.FullRank does not
// interpret them: it reads Constraint.Mode as its ranking key ("sum",
// "first" or "count"), and any other value, these three included, ranks
// lines by sum with no tie-breaking mode applied.
const (
	RankModeNone         = "none"
	RankModeOnlyUnclued  = "only-unclued"
	RankModeAny          = "any"
)

// Constraint is a node in the user-facing constraint tree the builder
// compiles. It is a deliberately generic, tagged struct rather than one
// Go type per Kind: with several dozen variant kinds sharing the same
// handful of shapes (an ordered cell list plus a few scalar parameters),
// one discriminated struct keeps decode (JSON -> tree) and the builder's
// kind switch flat, at the cost of fields being reinterpreted per Kind.
// Each Kind's field usage is documented at its constant or in the
// compiling function in internal/solver/build.
type Constraint struct {
	Kind Kind

	// Cells is the primary ordered cell list (most kinds: a line, a cage,
	// a region, a pair's two cells, a clue's bound line).
	Cells []int

	// Groups holds secondary cell lists for kinds that need more than one
	// (SameValues' two sets, PillArrow's pill cells alongside Cells' full
	// line, Quad's corner cells).
	Groups [][]int

	// Layout assigns each grid cell (by flat index, len == NumCells) to a
	// region id; used by Jigsaw.
	Layout []int

	// Children holds child nodes for And/Or and container-like grouping.
	Children []*Constraint

	// Scalar parameters, reused across kinds; see the per-Kind doc in the
	// builder for which fields a given Kind reads.
	Int0, Int1, Int2 int  // e.g. Sum/target, difference, modulus, rank, pill size
	Bool0            bool // e.g. GreaterThan's Reversed flag
	Mode             string
	Direction        Direction
	Values           []int   // e.g. FullRank's sibling ranks, ContainExact's required digits
	Pairs            [][2]int // explicit allowed (a,b) digit pairs, for Pair/PairX/Binary

	// ID is an optional stable identifier the caller may attach (used for
	// error reporting and dedup diagnostics); builder-generated
	// deduplication keys are computed independently of this field.
	ID string
}

// Clone deep-copies a constraint subtree.
func (c *Constraint) Clone() *Constraint {
	if c == nil {
		return nil
	}
	nc := *c
	nc.Cells = append([]int(nil), c.Cells...)
	if c.Groups != nil {
		nc.Groups = make([][]int, len(c.Groups))
		for i, g := range c.Groups {
			nc.Groups[i] = append([]int(nil), g...)
		}
	}
	nc.Layout = append([]int(nil), c.Layout...)
	nc.Values = append([]int(nil), c.Values...)
	nc.Pairs = append([][2]int(nil), c.Pairs...)
	nc.Children = make([]*Constraint, len(c.Children))
	for i, ch := range c.Children {
		nc.Children[i] = ch.Clone()
	}
	return &nc
}
