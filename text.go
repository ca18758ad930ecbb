package main

import (
	"github.com/letsjoyn/portfolio/internal/content"
	"github.com/letsjoyn/portfolio/internal/section"
)

var defaultPortfolio = content.Portfolio{
	Profile: content.Profile{
		Name:    "Nayvedya Shrivastava",
		Avatar:  "/images/avatar.png",
		Tagline: "frontend • backend • devops • competitive programmer",
		Bio: `I am a **2nd-year student** expanding my knowledge into Data Structures, Computer Concepts, and Full Stack Development while building real-world projects.
Currently organizing cloud workshops at **AWS Cloud Club**.`,
		Availability: `Available for freelance or full-time roles. Slide into my [DMs](https://x.com/letsjoyn) or [Email](mailto:joynnayvedya@gmail.com) me.`,
		LinksNote:    "Yep, they're all unlocked if you're curious.",
		Links: []content.Link{
			{Label: "GitHub", URL: "https://github.com/letsjoyn"},
			{Label: "LinkedIn", URL: "https://linkedin.com/in/letsjoyn"},
			{Label: "Resume", URL: "/static/resume.pdf", Highlight: true},
		},
		Socials: []content.Link{
			{Label: "YouTube", URL: "https://youtube.com/@letsjoyn", Icon: "youtube"},
			{Label: "Instagram", URL: "https://instagram.com/letsjoyn", Icon: "instagram"},
			{Label: "Codeforces", URL: "https://codeforces.com/profile/joynnayvedya", Icon: "swords"},
			{Label: "LeetCode", URL: "https://leetcode.com/u/letsjoyn/", Icon: "puzzle"},
			{Label: "AWS Community", URL: "https://community.aws/@letsjoyn", Icon: "cloud"},
		},
	},

	Experience: []content.Experience{
		{
			Role:        "Founding Core Member",
			Company:     "AWS Cloud Club - MSRIT",
			Period:      "May 2024 – Present",
			Description: "Building a technical community and organizing workshops for 200+ students in cloud computing. Leading initiatives to foster cloud literacy.",
		},
		{
			Role:        "Product Operations Intern",
			Company:     "Mera Mentor",
			Period:      "Oct 2023 – Mar 2024",
			Description: "Managed product delivery workflows and collaborated with engineering teams for bug identification and UX refinement.",
		},
	},

	Projects: []content.Project{
		{
			Title:       "LinkedIn for Gamers",
			Tech:        []string{"MERN Stack", "Socket.io"},
			Description: "A specialized networking platform for esports professionals and recruitment.",
		},
		{
			Title:       "Faculty Attendance Automation",
			Tech:        []string{"Python", "Selenium", "OCR"},
			Description: "Automated solution digitizing physical attendance registers and streamlining data entry.",
		},
		{
			Title:       "Book-Once",
			Tech:        []string{"Full Stack Aggregator"},
			Description: "Comprehensive travel booking platform aggregating flights and hotels.",
		},
	},

	Achievements: []content.Achievement{
		{Title: "1st Place, AI Codefix 2025", Detail: "Organized by Dept. of AIML, MSRIT."},
		{Title: "1st Place, AI Hackathon", Detail: "Won first prize at IISc Bangalore (May 2025)."},
		{Title: "Top 25 Teams (Internal)", Detail: "Selected internally at MSRIT for Smart India Hackathon 2025."},
		{Title: "Finalist, Infotsav'25", Detail: "Selected for Grand Finale at IIITM Gwalior."},
		{Title: "Global Rank 1669", Detail: "COMEDK 2025 (Top 1.5% of applicants)."},
	},

	Volunteering: []content.Volunteering{
		{
			Role:         "Core Member",
			Organization: "ClutchRIT Esports",
			Icon:         "gamepad",
			Period:       "Mar 2025 - Present",
			Description:  "Organized competitive gaming events for 500+ students, managed logistics, and handled public relations for the club.",
		},
		{
			Role:         "Video Editor",
			Organization: "The LNM Institute of Information Technology",
			Icon:         "video",
			Period:       "Aug 2024 - Sep 2024",
			Description:  "Learnt and applied content creation skills to produce videos for various organizations, including content that achieved viral reach.",
			Link: &content.Link{
				Label: "Watch Videos",
				URL:   "https://www.linkedin.com/in/letsjoyn/details/volunteering-experiences/",
			},
		},
	},

	Education: []content.Education{
		{
			Degree:  "B.E. in Information Science and Engineering",
			School:  "M.S. Ramaiah Institute of Technology",
			Period:  "Expected 2028",
			Details: "Active member of technical societies. Secured 1st Place in AI Codefin 2024.",
		},
		{Degree: "Class XII (PCM) - 93.4%", School: "Mahatma Hansraj Modern School", Period: "Completed", Details: "Strong foundation in Mathematics and Computer Science."},
		{Degree: "Class X - 94.8%", School: "Jai Academy Jhansi", Period: "Completed", Details: "Academic Excellence."},
		{Degree: "Schooling", School: "No. 1 Air Force School, Gwalior", Period: "Completed", Details: "Early education foundation."},
		{Degree: "Schooling", School: "Air Force School Viman Nagar, Pune", Period: "Completed", Details: "Early education foundation."},
	},

	Footer: content.Footer{
		Author:    "Nayvedya Shrivastava",
		Copyright: "©2025. All rights reserved.",
	},

	Titles: map[section.ID]string{
		section.Experience: "Places I've Made an Impact",
		section.Projects:   "Things I've Built",
	},
}
