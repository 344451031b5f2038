// Package xmltree builds and serializes the nested XML documents the
// simulator consumes.
//
// # Tree model
//
// Node is a plain ordered tree: insertion order of children is output
// order. Converters construct the whole tree in memory, then hand it
// to Write or WriteFile in one shot; a failed conversion therefore
// never leaves a partial document behind.
//
// # Tag names
//
// BuildTag turns axis labels into element names under an explicit
// whitespace and case policy, for example
//
//	tag, err := xmltree.BuildTag([]string{"AL1 0", "profile_onwind"},
//	    xmltree.TagPolicy{Case: xmltree.CaseKeep})
//	// tag == "AL1_0_profile_onwind"
//
// # Output format
//
// The writer emits a single-quoted XML declaration, two-space
// indentation and self-closed empty elements, byte-compatible with the
// documents the simulator has historically consumed. FormatFloat
// renders numeric leaves with shortest round-trip precision, keeping a
// trailing ".0" on integral values.
package xmltree
