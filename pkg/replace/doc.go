/*
Package replace is the case-preserving multi-pattern replacement engine.

	┌────────────────┐ PreserveCase ┌───────────────────┐
	│ AddReplacement │─────────────►│ casing.SplitWords │
	└──┬──────────┬──┘              └─────────┬─────────┘
	   │IgnoreCase│MatchCase                  │ nine renderings
	   ▼          └───────────────┐           │
	┌──────────────┐      ┌───────▼───────────▼───────┐
	│   fold set   │      │         exact set         │
	│ (ASCII fold) │      │       (byte match)        │
	└──────┬───────┘      └─────────────┬─────────────┘
	       └─────────────┬──────────────┘
	                     ▼
	           dual-finder scan loop ──► io.Writer sink

🎯 Purpose:
- Install find/replace rules under a case mode (preserve, ignore, match)
- Scan raw bytes once, left to right, emitting literals and replacements
- Preserve the casing style of each hit when replacing

🔄 Flow:
1. Rules land in one of two pattern sets (token trie + rule records)
2. PreserveCase rules expand into all canonical casing variants
3. A scan drives both sets in lock step and resolves overlapping hits by
   position: left-most wins, ties go to the exact set, longest within a set

The engine is byte-oriented and 8-bit clean. Case handling is ASCII-only;
any other byte matches itself. Scans allocate nothing beyond what the sink
does.
*/
package replace
