package knowledge

// Entry is one intent of the assistant's knowledge base: sample questions and
// the canonical answer used as model context.
type Entry struct {
	Intent   string   `json:"intent" yaml:"intent"`
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	Response string   `json:"response" yaml:"response"`
}

// Seed provides the built-in Expert Soft Solution knowledge base, used when no
// dataset file is configured.
func Seed() []Entry {
	return []Entry{
		{
			Intent: "greeting",
			Examples: []string{
				"hello",
				"hi there",
				"good morning",
				"hey, is anyone there",
			},
			Response: "Hello! Welcome to Expert Soft Solution. How can we help you today?",
		},
		{
			Intent: "services",
			Examples: []string{
				"what services do you offer",
				"what do you do",
				"which services does expert soft provide",
				"tell me about your services",
			},
			Response: "Expert Soft Solution builds custom web and mobile applications, provides cloud migration and DevOps consulting, and offers dedicated development teams.",
		},
		{
			Intent: "pricing",
			Examples: []string{
				"how much does a project cost",
				"what are your prices",
				"do you have pricing plans",
				"project cost estimate",
			},
			Response: "Pricing depends on scope. We offer fixed-price projects, time-and-material engagements and monthly retainers, and we send a free estimate after a short discovery call.",
		},
		{
			Intent: "contact",
			Examples: []string{
				"how can i contact you",
				"what is your email",
				"phone number",
				"talk to a human",
			},
			Response: "You can reach the team at contact@expertsoft.example or through the contact form on our website; we reply within one business day.",
		},
		{
			Intent: "location",
			Examples: []string{
				"where are you located",
				"where is your office",
				"office address",
			},
			Response: "Our main office works remotely with clients worldwide, and on-site workshops can be arranged on request.",
		},
		{
			Intent: "hiring",
			Examples: []string{
				"are you hiring",
				"job openings",
				"can i work for you",
				"career opportunities",
			},
			Response: "We regularly hire engineers and designers. Open positions are listed on the careers page, and you can also send an open application.",
		},
	}
}
