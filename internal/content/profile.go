package content

var (
	HeroTitle = `Aspiring Software Engineer — Full-Stack Developer (Next.js, Django, MERN)`

	AboutMe = `Aspiring software developer with strong full-stack development experience using Next.js,
	Django REST, and MERN stack. Passionate about solving real-world problems, building scalable web
	systems, and developing socially impactful products like MindSync+.`

	RoadmapIntro = `My development path from foundations to full-stack mastery, plus the exciting
	projects bringing it all together`
)

// Link is an outbound contact or social link.
type Link struct {
	Label string
	Href  string
}

// External reports whether the link should open in a new browsing context.
func (l Link) External() bool {
	return len(l.Href) > 4 && l.Href[:4] == "http"
}

// Job is one entry of the experience section.
type Job struct {
	Position     string
	Company      string
	Location     string
	StartDate    string
	EndDate      string
	Description  string
	Achievements []string
	Technologies []string
}

// Project is one card of the projects section.
type Project struct {
	Name         string
	Description  string
	Technologies []string
	Features     []string
	GitHub       string
	Demo         string
	Status       string
	Type         string
}

// Profile is everything outside the roadmap that the page shows.
type Profile struct {
	Name       string
	Title      string
	About      string
	Location   string
	Contacts   []Link
	Experience []Job
	Projects   []Project
	Interests  []string
}

// DefaultProfile returns the portfolio owner's profile.
func DefaultProfile() Profile {
	return Profile{
		Name:     "Vaaheesan S",
		Title:    HeroTitle,
		About:    AboutMe,
		Location: "Chennai, India",
		Contacts: []Link{
			{Label: "Email", Href: "mailto:vaahee21@gmail.com"},
			{Label: "LinkedIn", Href: "https://linkedin.com/in/vaaheesan-s"},
			{Label: "GitHub", Href: "https://github.com/vacmar"},
			{Label: "Phone", Href: "tel:+919499941994"},
		},
		Experience: []Job{
			{
				Position:    "Frontend Developer Intern",
				Company:     "Izeon Innovative Pvt. Ltd",
				Location:    "Remote",
				StartDate:   "Dec 2024",
				EndDate:     "Jan 2025",
				Description: "Frontend development internship focusing on responsive web design and UI implementation.",
				Achievements: []string{
					"Built a fully responsive Blvck Clothing Store clone using HTML, CSS, and vanilla JavaScript",
					"Focused on layout replication, UI precision, and professional code structuring",
					"Delivered pixel-perfect implementation with attention to detail",
				},
				Technologies: []string{"HTML5", "CSS3", "JavaScript", "Responsive Design"},
			},
		},
		Projects: []Project{
			{
				Name:         "Elevatr – Job and Internship Portal",
				Description:  "A comprehensive platform for students and recruiters with role-based dashboards, resume uploads, and admin management features.",
				Technologies: []string{"Next.js", "Tailwind CSS", "Django REST", "Supabase", "Vercel", "Render"},
				Features: []string{
					"Authentication for students/recruiters with role-based dashboards",
					"Resume uploads directly sent to recruiters for streamlined application",
					"Admin panel to manage listings, users, and access",
				},
				GitHub: "https://github.com/vacmar/Elevatr",
				Status: "In Development",
				Type:   "Solo Project",
			},
			{
				Name:         "Spendly – Personal Expense Tracker",
				Description:  "Feature-rich expense tracking application with category-wise analytics, notifications, and customizable themes.",
				Technologies: []string{"React.js", "Recharts", "Node.js", "MongoDB Atlas"},
				Features: []string{
					"Tracks income/expenses with category-wise charts and filtering",
					"Notifies users when inputs are missed to ensure habit consistency",
					"Dark/light theme toggle and dashboard UX design",
				},
				GitHub: "https://github.com/vacmar/Spendly",
				Status: "In Development",
				Type:   "Solo Project",
			},
			{
				Name:         "MindSync+ (Proposed Founder Project)",
				Description:  "Mobile-first mental health platform with anonymous, multilingual support and AI-powered assistance.",
				Technologies: []string{"Flutter", "Supabase", "GPT-4", "WebRTC", "Firebase", "Twilio"},
				Features: []string{
					"Anonymous, multilingual support with empathy-matching",
					"Text/video/voice support with AI-powered fallback",
					"Gamification, NGO dashboards, and moderation system",
				},
				Status: "Under Review - MSME Hackathon 5.0",
				Type:   "Founder Project Proposal",
			},
			{
				Name:         "Arya Productions Static Website",
				Description:  "Professional company website for a leading storage and material handling manufacturer.",
				Technologies: []string{"HTML5", "CSS3", "JavaScript", "FontAwesome"},
				Features: []string{
					"Responsive sections: About, Products, Services, and Contact",
					"Corporate branding with consistent layout and semantic HTML5",
					"Clean UI/UX practices with icon usage via FontAwesome",
				},
				GitHub: "https://github.com/vacmar/aryaproductions.github.io",
				Demo:   "https://vacmar.github.io/aryaproductions.github.io/",
				Status: "Completed",
				Type:   "Client Project",
			},
			{
				Name:         "Car Lane Detection System",
				Description:  "Real-time and image-based lane detection system using computer vision techniques.",
				Technologies: []string{"Python", "OpenCV", "Matplotlib"},
				Features: []string{
					"Canny edge detection and Hough Transform implementation",
					"ROI masking, slope averaging, and smoothing for accuracy",
					"Video and image support pipeline with interactive visual overlay",
				},
				GitHub: "https://github.com/vacmar/Car_Lane_Detection",
				Status: "Completed",
				Type:   "Computer Vision Project",
			},
		},
		Interests: []string{
			"Language Learning – Japanese & German",
			"Tech Curiosity – Problem Solving, Coding Mini-Games, Exploring CS Concepts",
			"Creativity – Drawing, UI Sketching, Personal Website Design",
			"Sports & Mindfulness – Badminton, Cricket, F1, Music For Focus & Relaxation",
		},
	}
}
