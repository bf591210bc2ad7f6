// Package canonical maps free-text categorical values onto small fixed
// vocabularies.
//
// A PatternVocabulary evaluates its rules in declaration order and returns
// the label of the first rule whose pattern matches, or the fallback label.
// Rules overlap on purpose: earlier, more specific rules must win, so the
// order of a rule list is part of its meaning.
//
// A LookupVocabulary is an exact-match table. Values that are not in the
// table pass through lower-cased and trimmed instead of collapsing to a
// fallback label. The city vocabulary is built this way so that unseen
// cities stay distinguishable.
//
// Every vocabulary is immutable after construction and safe for concurrent
// use.
package canonical
