// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import "strings"

// stopWords is the English stop word list applied before term
// formation. Stop words never appear in unigrams or bigrams.
var stopWords = func() map[string]bool {
	const list = `a about above after again against all also am an and any are as at
be because been before being below between both but by
can cannot could
did do does doing down during
each
few for from further
had has have having he her here hers herself him himself his how
i if in into is it its itself
just
me more most my myself
no nor not now
of off on once only or other our ours ourselves out over own
same she should so some such
than that the their theirs them themselves then there these they this those through to too
under until up upon us
very via
was we were what when where which while who whom why will with would
you your yours yourself yourselves`

	words := strings.Fields(list)
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()
