package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/nirbachon.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the built-in configuration. It mirrors the embedded
// YAML and is used when no file can be read.
func Default() Config {
	return Config{
		Start: StartConfig{
			Money:           5000,
			OpeningNews:     "নির্বাচনের তফসিল ঘোষণা করা হয়েছে! দেড় মিনিটের মধ্যে ৫০,০০০ ভোট যোগাড় করতে হবে!",
			RunStartNews:    "%s মার্কা নিয়ে নির্বাচনী যুদ্ধ শুরু! লক্ষ্য: ৫০,০০০ ভোট!",
			OpeningDialogue: "দেড় মিনিটের মধ্যে জয় নিশ্চিত করতে হবে!",
		},
		Characters: []CharacterConfig{
			{
				ID:                "paddy",
				Name:              "ধানের শীষ",
				Title:             "গণতান্ত্রিক উদ্ধারকর্তা (?)",
				Description:       "বিশাল জনসভা আর আন্দোলনের মাধ্যমে ভোট ব্যাংকের দখল। তবে দুর্নীতির ঝুঁকি সবসময় থাকে।",
				SpecialAbility:    "গণ জোয়ার (Votes +2000)",
				InitialCorruption: 30,
				InitialInfluence:  80,
			},
			{
				ID:                "scales",
				Name:              "দাড়ি পাল্লা",
				Title:             "ইনসাফের কারিগর",
				Description:       "শৃঙ্খলার আড়ালে নিজেদের এজেন্ডা বাস্তবায়ন। ব্যান হওয়ার ভয় থাকলেও সাপোর্ট সলিড।",
				SpecialAbility:    "কড়া শৃঙ্খলা (Corruption -10%)",
				InitialCorruption: 40,
				InitialInfluence:  70,
			},
			{
				ID:                "shapla",
				Name:              "শাপলা কলি",
				Title:             "জাতীয় ঐক্য (?)",
				Description:       "সবার সাথে তাল মিলিয়ে চলা। সুযোগ বুঝে পল্টি মারতে ওস্তাদ।",
				SpecialAbility:    "সুবিধাবাদী পল্টি (Cash +2000)",
				InitialCorruption: 50,
				InitialInfluence:  60,
			},
		},
		NPCs: []NPCConfig{
			{ID: "apa", Name: "এডভোকেট নির্বাচন আপা", Role: "মিথ্যা আশ্বাস ও ইমোশনাল কার্ড বিশেষজ্ঞ",
				Pitch: "আমার ছেলে তো জুলাইতে আহত হয়েছিল... আপনার জন্যেও এই কার্ড টা খেলা যাবে!", Action: "july_card"},
			{ID: "akik", Name: "আকিক", Role: "ড্রোন এক্সপার্ট ও টেকনিক্যাল শত্রু",
				Pitch: "ড্রোন ওড়াতে গেলে খরচ আছে ওস্তাদ। অপোজিশনের ফাইল সব রেডি!", Action: "drone_strike"},
			{ID: "reporter", Name: "হলুদ সাংঘাতিক ২৪", Role: "ভুয়া খবর ও তোলাবাজি কিং",
				Pitch: "আপনার টাকা, আমার খবর। ভিউস আকাশ ছোঁবে, পাবলিক বিভ্রান্ত হবেই!", Action: "fake_news"},
			{ID: "rajib", Name: "রাজীব স্যার PUB", Role: "ডিল মেকার ও সমঝোতা গুরু",
				Pitch: "ভাই গরমিল করে লাভ নাই। রাজীব স্যার থাকতে সব মেটানো সম্ভব।", Action: "mediation"},
		},
		Notices: NoticeConfig{
			Corruption:   "জনগণ আপনার মিথ্যা আশ্বাস ধরে ফেলেছে! জনরোষে আপনার অবস্থা খারাপ!",
			Timeout:      "সময় শেষ! নির্বাচন কমিশন আপনার ফলাফল স্থগিত করেছে।",
			WinHeadline:  "অভিনন্দন! জয়ী!",
			LossHeadline: "নির্বাচন বাতিল!",
			WinSlogan:    "অবশেষে গদি আমাদের! এখন ৫ বছর শুধু লুটপাট আর উন্নয়ন!",
			LossSlogan:   "জনগণ সব বুঝে গেছে ওস্তাদ! আমাদের টিকেট এখন জেলে বা বিদেশে!",
			SloganCredit: "হলুদ সাংবাদিক ২৪ (লাইভ ফিনিশিং)",
		},
		Flavor: FlavorConfig{
			Provider:            "gemini",
			Model:               "gemini-3-flash-preview",
			NewsTemperature:     0.9,
			DialogueTemperature: 1.0,
			Timeout:             10 * time.Second,
			NewsSubject:         "প্রার্থী",
			NewsPrompt: "Generate a funny, 1-sentence satirical news headline in Bengali about the election symbol '%s' involved in a scandal regarding '%s'.\n" +
				"Context: Bangladesh Election Parody. Tone: Gen-Z, ironic, sharp. Use words like 'Osthir', 'Lul', 'Khela Hobe', 'Kopa'.",
			DialoguePrompt: "Generate a funny dialogue in Bengali for %s regarding the action '%s'.\n" +
				"Context: Satirical Bangladesh Election. Keep it very short (max 15 words). Include mentions of 'July card' or 'Drone' or 'Deal' where applicable.",
			Actors: map[string]string{
				"apa":       "Advocate Nirbachon Apa (Lies about her son injured in July)",
				"akik":      "Akik (Drone expert, rival of Apa)",
				"reporter":  "Holud Sanghatik 24 (Corrupt yellow journalist)",
				"rajib":     "Rajib Sir PUB (The mediator)",
				"candidate": "A desperate political candidate symbol",
			},
			Fallbacks: FallbackConfig{
				NewsEmpty:     "ব্রেকিং নিউজ: এখনো কোনো খবর নেই!",
				NewsError:     "হলুদ সাংঘাতিক ২৪: দুর্নীতি চলছে, আমাদের নিউজও চলছে!",
				DialogueEmpty: "খেলা তো হবেই!",
				DialogueError: "এসব ষড়যন্ত্র! আমার ছেলে জুলাইতে আহত হয়েছে!",
			},
			Offline: OfflineConfig{
				News: []string{
					"%s মার্কার সমাবেশে বিরিয়ানি শেষ, জনতা অস্থির!",
					"ব্রেকিং: %s শিবিরে টাকার বস্তা উদ্ধার, বলছে এটা উন্নয়নের টাকা!",
				},
				Dialogue: map[string][]string{
					"candidate": {"খেলা হবে, ভোট হবে, গদি হবে!"},
				},
			},
		},
		UI: UIConfig{
			RefreshRate:  30,
			Title:        "NIRBACHON CHAOS",
			Tagline:      "90 SECONDS MISSION",
			IdleDialogue: "ছবির ওপর ট্যাপ করে ভোট বাড়ান!",
			VoteMarker:   "+%d ভোট",
			Briefing:     "## মিশন: ১.৫ মিনিটে গদি দখল!\n\nদেড় মিনিটের মধ্যে **৫০,০০০ ভোট** যোগাড় করুন।\n\n> সাবধান! দুর্নীতি ১০০% হলে পাবলিক গণধোলাই দিবে!\n",
		},
	}
}
