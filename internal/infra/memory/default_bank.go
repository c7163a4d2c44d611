package memory

import "coursebank-service/internal/domain"

// DefaultBank is the built-in question set used when no Postgres seed store is
// configured. A condensed sample of the course bank, a few questions per unit.
func DefaultBank() []domain.Question {
	return []domain.Question{
		{
			ID:       1012,
			Unit:     domain.UnitIntegration,
			Scenario: "Two clinicians discuss the same client: one frames his anxiety as unresolved inner conflict, the other as a learned response maintainable by avoidance.",
			Text:     "What does this disagreement best illustrate?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "That one theory must be correct and the other refuted",
				domain.OptionB: "That each personality theory highlights different determinants of the same behavior",
				domain.OptionC: "That clinical judgment is independent of theory",
				domain.OptionD: "That anxiety cannot be studied scientifically",
			},
			CorrectAnswer: domain.OptionB,
			Explanation:   "Comparative study of personality theories shows each framework foregrounds different causes; they are complementary lenses rather than mutually exclusive claims.",
		},
		{
			ID:       1011,
			Unit:     domain.UnitTraits,
			Scenario: "Across school, work and family gatherings, Lina is consistently described as organized, punctual and dependable.",
			Text:     "Which trait-theory concept does this cross-situational consistency exemplify?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "A central trait, here conscientiousness, stable across situations",
				domain.OptionB: "A temporary state induced by the observer",
				domain.OptionC: "Situational specificity of behavior",
				domain.OptionD: "A secondary trait appearing only under stress",
			},
			CorrectAnswer: domain.OptionA,
			Explanation:   "Trait theory treats enduring dispositions such as conscientiousness as stable tendencies that express themselves consistently across situations.",
		},
		{
			ID:       1010,
			Unit:     domain.UnitTraits,
			Scenario: "A researcher reduces hundreds of adjective ratings of personality to five broad statistical dimensions.",
			Text:     "Which analytic tradition is the researcher following?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "Free association",
				domain.OptionB: "Operant conditioning of verbal behavior",
				domain.OptionC: "Factor analysis in the lexical trait tradition",
				domain.OptionD: "Phenomenological interviewing",
			},
			CorrectAnswer: domain.OptionC,
			Explanation:   "The five-factor model emerged from factor-analytic reduction of trait adjectives, the hallmark method of the lexical trait tradition.",
		},
		{
			ID:       1009,
			Unit:     domain.UnitHumanism,
			Scenario: "A counselor listens to a student without judging him, reflecting his feelings and accepting him regardless of his grades.",
			Text:     "Which Rogerian condition for growth is the counselor providing?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "Conditional regard tied to achievement",
				domain.OptionB: "Unconditional positive regard",
				domain.OptionC: "Systematic desensitization",
				domain.OptionD: "Interpretation of transference",
			},
			CorrectAnswer: domain.OptionB,
			Explanation:   "Rogers held that unconditional positive regard lets the client drop conditions of worth and move toward congruence between self and experience.",
		},
		{
			ID:       1008,
			Unit:     domain.UnitHumanism,
			Scenario: "Having secured income, friends and respect at work, an engineer leaves her job to paint, saying she finally wants to become everything she can be.",
			Text:     "Which level of Maslow's hierarchy is she pursuing?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "Safety needs",
				domain.OptionB: "Belongingness needs",
				domain.OptionC: "Esteem needs",
				domain.OptionD: "Self-actualization",
			},
			CorrectAnswer: domain.OptionD,
			Explanation:   "With deficiency needs met, motivation shifts to self-actualization, the realization of one's full potential at the top of Maslow's hierarchy.",
		},
		{
			ID:       1007,
			Unit:     domain.UnitCognitive,
			Scenario: "After failing one exam, Omar concludes he is stupid and that studying is pointless, although his record is otherwise strong.",
			Text:     "From a cognitive perspective, what best explains Omar's reaction?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "A distorted interpretation (overgeneralization) of the event, not the event itself",
				domain.OptionB: "An unconscious death instinct",
				domain.OptionC: "Insufficient reinforcement history",
				domain.OptionD: "A blocked actualizing tendency",
			},
			CorrectAnswer: domain.OptionA,
			Explanation:   "Cognitive theory locates disturbance in how events are appraised; overgeneralizing a single failure into a global self-judgment is a classic distortion.",
		},
		{
			ID:       1006,
			Unit:     domain.UnitCognitive,
			Scenario: "Salma expects to fail interviews, so she avoids preparing, performs poorly and takes the failure as proof she was right.",
			Text:     "Which cognitive mechanism does this cycle illustrate?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "Classical extinction",
				domain.OptionB: "A self-fulfilling schema that filters and confirms expectations",
				domain.OptionC: "Reaction formation",
				domain.OptionD: "Peak experience",
			},
			CorrectAnswer: domain.OptionB,
			Explanation:   "Schemas guide attention and behavior so that expectation-consistent outcomes are produced and noticed, reinforcing the schema itself.",
		},
		{
			ID:       1005,
			Unit:     domain.UnitBehaviorism,
			Scenario: "A child screams in a supermarket; his father buys him candy to stop the noise. The screaming grows more frequent on later trips.",
			Text:     "What maintains the child's screaming?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "Punishment delivered by the father",
				domain.OptionB: "Spontaneous recovery",
				domain.OptionC: "Positive reinforcement of screaming by the candy",
				domain.OptionD: "Stimulus generalization from home to store",
			},
			CorrectAnswer: domain.OptionC,
			Explanation:   "The candy is a pleasant consequence contingent on screaming, so it reinforces and strengthens the behavior; the father is simultaneously negatively reinforced for giving in.",
		},
		{
			ID:       1004,
			Unit:     domain.UnitBehaviorism,
			Scenario: "A nurse who was bitten by a dog as a child now feels fear at the mere sound of barking from behind a fence.",
			Text:     "In classical conditioning terms, the barking is a:",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "Conditioned stimulus eliciting a conditioned fear response",
				domain.OptionB: "Unconditioned stimulus",
				domain.OptionC: "Neutral stimulus with no learned value",
				domain.OptionD: "Discriminative stimulus for operant avoidance",
			},
			CorrectAnswer: domain.OptionA,
			Explanation:   "Through pairing with the bite, the previously neutral bark became a conditioned stimulus that now elicits fear as a conditioned response.",
		},
		{
			ID:       1003,
			Unit:     domain.UnitModernPsycho,
			Scenario: "An adult who felt chronically unseen as a child seeks constant admiration and collapses at the mildest criticism.",
			Text:     "Which post-Freudian emphasis best frames this presentation?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "Fixation at the oral stage driven by libido",
				domain.OptionB: "Deficits in early mirroring shaping a fragile self (self psychology)",
				domain.OptionC: "Conditioned emotional response to criticism",
				domain.OptionD: "Low conscientiousness as a heritable trait",
			},
			CorrectAnswer: domain.OptionB,
			Explanation:   "Modern psychoanalytic schools such as Kohut's self psychology shift the focus from drives to early relational needs like mirroring in forming a cohesive self.",
		},
		{
			ID:       1002,
			Unit:     domain.UnitFreud,
			Scenario: "A manager humiliated by his director says nothing at work, then explodes at his family over a trivial matter the same evening.",
			Text:     "Which defense mechanism does the manager's behavior illustrate?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "Sublimation",
				domain.OptionB: "Projection",
				domain.OptionC: "Displacement of aggression onto a safer target",
				domain.OptionD: "Denial of the humiliating event",
			},
			CorrectAnswer: domain.OptionC,
			Explanation:   "Displacement redirects an impulse from a threatening target (the director) to a safer substitute (the family), discharging the tension while avoiding danger.",
		},
		{
			ID:       1001,
			Unit:     domain.UnitIntroduction,
			Scenario: "Asked to define personality, a student answers only with 'how charming someone is at parties'.",
			Text:     "Why is this definition inadequate for scientific study?",
			Options: map[domain.OptionKey]string{
				domain.OptionA: "It reduces personality to social impression instead of stable patterns of thought, feeling and behavior",
				domain.OptionB: "It is too broad to measure",
				domain.OptionC: "Charm is not part of personality at all",
				domain.OptionD: "Personality can only be defined physiologically",
			},
			CorrectAnswer: domain.OptionA,
			Explanation:   "Psychology defines personality as the relatively stable, organized patterns of thinking, feeling and behaving that characterize a person, not surface social appeal.",
		},
	}
}
