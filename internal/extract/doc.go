// Package extract sends reduced page chunks to an OpenAI-compatible
// language model endpoint together with a free-text description of what
// to pull out. The model is a black box: the package owns only the
// per-chunk request loop and the joining of non-empty answers.
package extract
