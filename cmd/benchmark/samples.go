package main

import "strings"

// Sample is a benchmark input.
type Sample struct {
	Name string
	Text string
}

// Samples are rough drafts of increasing length, the last one past the
// server's 12,000 character clamp.
var Samples = []Sample{
	{
		Name: "tiny",
		Text: "pls send me the invoice from last month i cant find it anywere",
	},
	{
		Name: "short",
		Text: `Quick update on the migration. We moved the first three tables yesterday evening and everything look ok, but the orders table is bigger then we thought so it will take the whole weekend. I will monitor it and write here if something break.`,
	},
	{
		Name: "medium",
		Text: `Hello everyone,

As discussed in the retro, we are going to change how we do code reviews starting next sprint. Every PR need at least one approval from somebody outside the team that wrote it, and PRs bigger than 400 lines should be splitted before asking for review.

The reason is that last quarter we had two incidents that was caused by changes nobody really read carefully because they were to big. I know this will slow us down a little at the beginning but I am confident it pays off.

If you have concerns please reply to this thread or bring them to the planning on monday.

Thanks`,
	},
	{
		Name: "long",
		Text: strings.Repeat("The report was wrote in a hurry and it have many small errors that make it hard to read. ", 60),
	},
	{
		Name: "clamp",
		Text: strings.Repeat("this sentence is repeated until the input is longer than the limit. ", 200),
	},
}

// QualitySamples are short inputs with typical mistakes, printed side by side
// with the output in --quality mode.
var QualitySamples = []Sample{
	{Name: "typos", Text: "helo wrld, this is a quik test of the sistem"},
	{Name: "grammar", Text: "She don't know where is the meeting room and nobody have told her."},
	{Name: "tone", Text: "fix this asap its broken AGAIN and customers are angry!!!"},
	{Name: "tense", Text: "Yesterday I go to the client office and we discuss about the new contract."},
	{Name: "spanish-english", Text: "I am agree with you, we must to finish it before friday."},
}
