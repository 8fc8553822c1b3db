// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey describes the fixed questionnaire and turns raw answers into
canonical option keys.

# Catalog

	catalog, err := survey.Default()

New validates a question list: all three options per question, no label
mapping to two options, no form field shared by two questions. main refuses
to start on an invalid catalog.

# Field Aliases

Older forms posted motivo1/m1 instead of q1. Pick takes the first non-blank
value in the order q1, motivo1, m1 (likewise for 2 and 3).

# Normalization

	opt, ok := catalog.Normalize("q1", "Sempre") // "opt1", true

Matching order:

 1. canonical key ("opt2")
 2. label table, ignoring case, accents and extra spaces ("nao" == "Não")
 3. first literal 1, 2 or 3 in the value ("resposta 2")

ok is false when none applies; the submission still counts towards the total.

# Percentages

	survey.Percent(count, total) // rounded to one decimal, 0 when total is 0
*/
package survey
