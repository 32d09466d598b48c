package questionbank

// seedCategories lists categories in traversal order.
var seedCategories = []Category{
	{ID: "Foundation", Name: "Relationship Foundation", Icon: "🏗️"},
	{ID: "Safety", Name: "Safety & Security", Icon: "🛡️"},
	{ID: "Commitment", Name: "Commitment", Icon: "🔗"},
	{ID: "Clarity", Name: "Clarity", Icon: "🔍"},
	{ID: "Connection", Name: "Connection & Intimacy", Icon: "❤️"},
	{ID: "Attraction", Name: "Attraction", Icon: "✨"},
	{ID: "Power", Name: "Power & Balance", Icon: "⚖️"},
	{ID: "Respect", Name: "Respect & Value", Icon: "🙏"},
	{ID: "Communication", Name: "Communication", Icon: "💬"},
	{ID: "Trust", Name: "Trust & Honesty", Icon: "🤝"},
	{ID: "Affection", Name: "Affection & Liking", Icon: "😊"},
	{ID: "Generosity", Name: "Generosity", Icon: "🎁"},
	{ID: "Physical", Name: "Physical Closeness", Icon: "🫂"},
	{ID: "Awareness", Name: "Awareness", Icon: "👁️"},
	{ID: "Change", Name: "Growth & Change", Icon: "🌱"},
	{ID: "Acceptance", Name: "Acceptance", Icon: "🕊️"},
	{ID: "Boundaries", Name: "Boundaries", Icon: "🚧"},
	{ID: "Lifestyle", Name: "Lifestyle", Icon: "🏡"},
	{ID: "Compatibility", Name: "Compatibility", Icon: "🧩"},
	{ID: "Practicality", Name: "Practical Reality", Icon: "🧭"},
	{ID: "Self-Worth", Name: "Self-Worth", Icon: "🪞"},
	{ID: "Avoidance", Name: "Avoidance", Icon: "🚪"},
	{ID: "Support", Name: "Support & Care", Icon: "🤗"},
	{ID: "Value", Name: "Value & Loss", Icon: "💎"},
	{ID: "Healing", Name: "Healing", Icon: "🩹"},
	{ID: "Forgiveness", Name: "Forgiveness", Icon: "🤲"},
	{ID: "Needs", Name: "Needs", Icon: "🧺"},
	{ID: "Life Goals", Name: "Life Goals", Icon: "🏔️"},
	{ID: "Intimacy", Name: "Intimacy", Icon: "💞"},
	{ID: "Joy", Name: "Joy & Fun", Icon: "🎉"},
	{ID: "Future", Name: "Shared Future", Icon: "🎯"},
	{ID: "Ambivalence", Name: "Ambivalence", Icon: "❔"},
}

// seedQuestions is the built-in diagnostic questionnaire in bank order.
var seedQuestions = []Question{
	{
		ID:        1,
		Category:  "Foundation",
		Prompt:    "Think about that time when things between you and your partner were at their best. Looking back, would you now say that things were really very good between you then?",
		Guideline: "If, when your relationship was at its 'best,' things between you didn't feel right or work well, the prognosis is poor.",
		QuickTake: "If it never was very good, it'll never be very good.",
		Weight:    3,
		Reversed:  true,
	},
	{
		ID:        2,
		Category:  "Safety",
		Prompt:    "Has there been more than one incident of physical violence in your relationship?",
		Guideline: "Abuse that happens more than once means you must leave the relationship. Otherwise, it will happen again and again.",
		QuickTake: "Physical abuse means love is dead.",
		Weight:    5,
		Critical:  true,
	},
	{
		ID:        3,
		Category:  "Commitment",
		Prompt:    "Have you already made a concrete commitment to pursue a course of action or lifestyle that definitely excludes your partner?",
		Guideline: "If you've actually made a concrete commitment to pursue a course of action or lifestyle that excludes your partner, then on some level you've already decided.",
		QuickTake: "If you look like you're leaving your relationship and act like you're leaving it, you're leaving it.",
		Weight:    4,
	},
	{
		ID:        4,
		Category:  "Clarity",
		Prompt:    "If God or some omniscient being said it was okay to leave, would you feel tremendously relieved and have a strong sense that finally, you could end your relationship?",
		Guideline: "If this suddenly gives you a strong sense that it's all right for you to end your relationship, you'll most likely feel you've discovered what's best for you if you choose to leave.",
		QuickTake: "If God's saying 'Hey, whatever you want is okay with me' is all you'd need to feel it's okay to leave, it's okay to leave.",
		Weight:    4,
	},
	{
		ID:        5,
		Category:  "Connection",
		Prompt:    "In spite of your problems, do you and your partner have even one positively pleasurable activity or interest (besides children) you currently share and look forward to sharing in the future?",
		Guideline: "If there's even one thing you experience together and look forward to that reliably feels good and makes you feel close, there's possibility.",
		QuickTake: "Real love needs real loving experiences.",
		Weight:    3,
		Reversed:  true,
	},
	{
		ID:        6,
		Category:  "Attraction",
		Prompt:    "Would you say that to you your partner is basically nice, reasonably intelligent, not too neurotic, okay to look at, and most of the time smells all right?",
		Guideline: "When people say yes to this question, the possibility of love still exists.",
		QuickTake: "You just can't love someone who's mean, dumb, crazy, ugly, or stinky.",
		Weight:    2,
		Reversed:  true,
	},
	{
		ID:        7,
		Category:  "Power",
		Prompt:    "Does your partner bombard you with difficulties when you try to get even the littlest thing you want?",
		Guideline: "If almost any need you have gets obliterated, and getting what you want is such an ordeal that it's not worth the effort, you'll be happy if you leave.",
		QuickTake: "Power people poison passion.",
		Weight:    3,
	},
	{
		ID:        8,
		Category:  "Respect",
		Prompt:    "Do you have a basic, recurring, never-completely-going-away feeling of humiliation or invisibility in your relationship?",
		Guideline: "If your partner gives you a recurring feeling of humiliation or invisibility, you're in a situation people are happy they left.",
		QuickTake: "Humiliation is the barometer of hatred.",
		Weight:    4,
	},
	{
		ID:        9,
		Category:  "Communication",
		Prompt:    "Does it seem to you that your partner generally and consistently blocks your attempts to bring up topics or raise questions?",
		Guideline: "If your partner constantly prevents you from talking about things that are important to you, this destructive problem will not get better by itself.",
		QuickTake: "You'll suffocate if the dirt hits the fan whenever you try to shoot the breeze.",
		Weight:    3,
	},
	{
		ID:        10,
		Category:  "Trust",
		Prompt:    "Have you gotten to the point where you usually feel it's more likely that your partner is lying than telling the truth?",
		Guideline: "If you find yourself thinking 'He's probably lying' whenever your partner says anything, nothing good is going to happen in that relationship.",
		QuickTake: "When you're married to a liar, your marriage is a lie.",
		Weight:    4,
	},
	{
		ID:        11,
		Category:  "Affection",
		Prompt:    "In spite of admirable qualities, do you genuinely like your partner, and does your partner seem to like you?",
		Guideline: "If it's clear that basically you just don't like your partner, or they don't like you, then your love is a ghost.",
		QuickTake: "In the long run—no like, no love.",
		Weight:    3,
		Reversed:  true,
	},
	{
		ID:        12,
		Category:  "Generosity",
		Prompt:    "Do you feel willing to give your partner more than you're giving already, without any expectation of being paid back?",
		Guideline: "If you are still willing to deliver a concrete expression of love without expecting anything back, there's a real chance of aliveness in your relationship.",
		QuickTake: "When there's nothing left to give, there's nothing left at all.",
		Weight:    2,
		Reversed:  true,
	},
	{
		ID:        13,
		Category:  "Physical",
		Prompt:    "Do both you and your partner want to touch each other and look forward to touching each other?",
		Guideline: "If either has stopped wanting to touch or be touched by the other for several months, you're making a profound statement about alienation.",
		QuickTake: "If someone makes your flesh crawl, it's time to crawl out of the relationship.",
		Weight:    3,
		Reversed:  true,
	},
	{
		ID:        14,
		Category:  "Attraction",
		Prompt:    "Do you feel a unique sexual attraction to your partner?",
		Guideline: "If you feel a physical, sexual attraction that puts your partner in a special category, you'll be happy if you stay.",
		QuickTake: "If you're especially attracted to your partner, there's something special about your relationship.",
		Weight:    2,
		Reversed:  true,
	},
	{
		ID:        15,
		Category:  "Awareness",
		Prompt:    "Does your partner neither see nor admit things you've tried to get them to acknowledge that make your relationship too bad to stay in?",
		Guideline: "If your partner cannot and does not acknowledge problems you've pointed out, those problems will just get worse over time.",
		QuickTake: "If your partner can't even see what makes you want to get out, it's time to get out.",
		Weight:    3,
	},
	{
		ID:        16,
		Category:  "Change",
		Prompt:    "Is there something your partner does that makes your relationship too bad to stay in that they acknowledge but are unwilling to change?",
		Guideline: "If your partner acknowledges a deal-breaking problem but is unwilling to do anything about it for at least six months, you'll be happier if you leave.",
		QuickTake: "If you're waiting for your partner to want to change, you're waiting for Godot.",
		Weight:    3,
	},
	{
		ID:        17,
		Category:  "Acceptance",
		Prompt:    "Have you tried to let go of the problem that bothers you most, ignore it, stop letting it bother you? Were you successful?",
		Guideline: "If you can really let go of the problem that's most making you want to leave, there's a real chance this relationship is too good to leave.",
		QuickTake: "In a relationship with a future, people can let go of the problems they can't solve.",
		Weight:    2,
		Reversed:  true,
	},
	{
		ID:        18,
		Category:  "Change",
		Prompt:    "Does your partner acknowledge their problem, are they willing to do something about it, and are they able to change?",
		Guideline: "If your partner shows real signs of being able to change, there's something healthy and alive at the core of your relationship.",
		QuickTake: "It's the ability to change that turns frogs into princes.",
		Weight:    3,
		Reversed:  true,
	},
	{
		ID:        19,
		Category:  "Boundaries",
		Prompt:    "Has your partner violated what for you is a bottom line?",
		Guideline: "If you've made clear your real bottom lines and your partner's violated them anyway, by definition you will not be happy if you stay.",
		QuickTake: "The bottom line is the end of the line.",
		Weight:    5,
	},
	{
		ID:        20,
		Category:  "Lifestyle",
		Prompt:    "Is there a clearly formulated, passionately held difference between you about how to live?",
		Guideline: "If you have profoundly divergent preferences about how to live, and your preferred lifestyle is impossible with your partner, you'll be happy if you leave.",
		QuickTake: "You live a life, you don't live a relationship.",
		Weight:    3,
	},
	{
		ID:        21,
		Category:  "Compatibility",
		Prompt:    "Would you say that deep down your partner is someone just like you in a way you feel good about?",
		Guideline: "If you truly feel your partner is like you in some meaningful way that you feel good about, there's a real chance your relationship is too good to leave.",
		QuickTake: "When you look deep in your partner's eyes you've got to be able to see yourself.",
		Weight:    2,
		Reversed:  true,
	},
	{
		ID:        22,
		Category:  "Practicality",
		Prompt:    "Looking realistically at leaving, have you discovered it seems impossibly difficult or unpleasant?",
		Guideline: "If a fresh, realistic look makes leaving seem too difficult and staying seem desirable, you know you'll be happier staying.",
		QuickTake: "If staying makes sense when you really check into it, it makes sense to stay.",
		Weight:    2,
		Reversed:  true,
	},
	{
		ID:        23,
		Category:  "Practicality",
		Prompt:    "Looking realistically at leaving, have you discovered it seems easier and more attractive?",
		Guideline: "If looking realistically at leaving makes it seem easier and more attractive, you've gotten the clarity you were looking for.",
		QuickTake: "If leaving makes sense when you really check into it, then it makes sense to leave.",
		Weight:    2,
	},
	{
		ID:        24,
		Category:  "Self-Worth",
		Prompt:    "Does your partner convince you that you're a nut, jerk, loser, or idiot about important parts of yourself?",
		Guideline: "If your partner is damaging the way you see yourself through disrespectful words and actions, they're cutting your legs out from under you.",
		QuickTake: "If someone is starting to cut your legs out from under you, walk out while you still have legs.",
		Weight:    4,
	},
	{
		ID:        25,
		Category:  "Avoidance",
		Prompt:    "Do you do everything possible to limit your contact with your partner, except when you absolutely must interact?",
		Guideline: "If you realize you avoid your partner whenever possible, the level of disrespect has spoiled your relationship atmosphere.",
		QuickTake: "The water's too bad to drink when you find you've stopped drinking the water.",
		Weight:    3,
	},
	{
		ID:        26,
		Category:  "Support",
		Prompt:    "Does your partner show concrete support for and genuine interest in things that are important to you?",
		Guideline: "If your partner shows substantial support and interest in ways that make a real difference, you're in a relationship that's too good to leave.",
		QuickTake: "Being there when it counts is respect that delivers.",
		Weight:    3,
		Reversed:  true,
	},
	{
		ID:        27,
		Category:  "Value",
		Prompt:    "Would you lose anything important if your partner were no longer your partner?",
		Guideline: "If you wouldn't lose anything you couldn't do without, your partner doesn't have anything real to offer you.",
		QuickTake: "There's no need to keep something you wouldn't miss or don't value.",
		Weight:    2,
		Reversed:  true,
	},
	{
		ID:        28,
		Category:  "Healing",
		Prompt:    "Whatever hurt was caused, do you sense that the pain and damage have lessened with time?",
		Guideline: "If there continues to be a lessening in pain, hurt, fear, and anger over time, your relationship can heal.",
		QuickTake: "Time heals all healable wounds.",
		Weight:    3,
		Reversed:  true,
	},
	{
		ID:        29,
		Category:  "Forgiveness",
		Prompt:    "Is there a demonstrated capacity and mechanism for genuine forgiveness in your relationship?",
		Guideline: "If there's demonstrated capacity for genuine forgiveness, including letting go and feeling sorry, this relationship can survive injury.",
		QuickTake: "If you can't find your way back to forgiveness, you can't find your way back to each other.",
		Weight:    3,
		Reversed:  true,
	},
	{
		ID:        30,
		Category:  "Needs",
		Prompt:    "Is it likely that you and your partner can work out ways to meet reasonable needs without too painful a struggle?",
		Guideline: "If you've lost hope of getting reasonable needs met without painful struggle, you'll be happy if you leave.",
		QuickTake: "Frustration, fear, and deprivation tell you this relationship is not your home.",
		Weight:    3,
		Reversed:  true,
	},
	{
		ID:        31,
		Category:  "Life Goals",
		Prompt:    "Is there a need so important that without it your life won't be satisfying, and you're discouraged about getting it met?",
		Guideline: "If your partner blocks a life-defining need and you can't work out a resolution, you'll be happy if you leave.",
		QuickTake: "Beware of unmet needs so important they sow the seeds of hate.",
		Weight:    4,
	},
	{
		ID:        32,
		Category:  "Intimacy",
		Prompt:    "Does it feel like your partner's main interest in getting close is subjecting you to anger and criticism?",
		Guideline: "If your partner mainly uses closeness to express anger and criticism, you'll never feel close or safe.",
		QuickTake: "If getting close feels like entering a boxing ring, it's time to end the match.",
		Weight:    3,
	},
	{
		ID:        33,
		Category:  "Intimacy",
		Prompt:    "When intimacy comes up, is there generally a battle over what it is and how to get it?",
		Guideline: "If you cannot agree about intimacy and holding positions is more important than bridging differences, most are happy they left.",
		QuickTake: "If getting close drives you apart, you can never get close.",
		Weight:    2,
	},
	{
		ID:        34,
		Category:  "Joy",
		Prompt:    "Does your relationship support you having fun together?",
		Guideline: "If having fun together is no longer a possibility and you live without hope of fun again, most are happy they leave.",
		QuickTake: "Fun is the glue of love.",
		Weight:    2,
		Reversed:  true,
	},
	{
		ID:        35,
		Category:  "Future",
		Prompt:    "Do you currently share goals and dreams for your life together?",
		Guideline: "If you share a meaningful goal or dream that gives satisfaction and meaning, your relationship is too good to leave.",
		QuickTake: "Sharing a passion makes it easier to share a life.",
		Weight:    3,
		Reversed:  true,
	},
	{
		ID:        36,
		Category:  "Ambivalence",
		Prompt:    "If all problems were magically solved today, would you still feel ambivalent about staying or leaving?",
		Guideline: "If you'd still be ambivalent even without problems, you're indicating deep discomfort with your partner or relationship.",
		QuickTake: "If you don't know whether you want to stay even if nothing were wrong, then you don't want to stay.",
		Weight:    4,
	},
}
