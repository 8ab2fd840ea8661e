package web

// Offering is one entry of the services catalogue.
type Offering struct {
	Title        string
	Description  string
	Features     []string
	Technologies []string
}

// HomeData fills the home page.
type HomeData struct {
	Services []Offering
	Features []string
}

// ServicesData fills the services page.
type ServicesData struct {
	Offerings  []Offering
	Additional []Offering
}

// Home returns the static content of the home page.
func Home() HomeData {
	return HomeData{
		Services: []Offering{
			{Title: "Web Development", Description: "Modern, responsive websites and web applications built with cutting-edge technologies."},
			{Title: "Mobile Development", Description: "Native and cross-platform mobile apps that deliver exceptional user experiences."},
			{Title: "Digital Marketing", Description: "Strategic digital marketing campaigns that drive growth and engagement."},
			{Title: "UI/UX & Graphic Design", Description: "Beautiful, intuitive designs that enhance user experience and brand identity."},
		},
		Features: []string{
			"Expert team of developers and designers",
			"Modern technology stack",
			"Agile development process",
			"Ongoing support and maintenance",
			"Competitive pricing",
			"On-time delivery",
		},
	}
}

// Services returns the static services catalogue.
func Services() ServicesData {
	return ServicesData{
		Offerings: []Offering{
			{
				Title:       "Web Development",
				Description: "Custom web applications built with modern technologies",
				Features: []string{
					"Responsive Design", "Modern Frameworks (React, Next.js)", "Database Integration",
					"API Development", "Performance Optimization", "SEO Optimization",
				},
				Technologies: []string{"React", "Next.js", "TypeScript", "Node.js", "PostgreSQL"},
			},
			{
				Title:       "Mobile Development",
				Description: "Native and cross-platform mobile applications",
				Features: []string{
					"iOS & Android Apps", "Cross-platform Solutions", "Native Performance",
					"Push Notifications", "Offline Functionality", "App Store Deployment",
				},
				Technologies: []string{"React Native", "Flutter", "Swift", "Kotlin", "Firebase"},
			},
			{
				Title:       "Digital Marketing",
				Description: "Strategic marketing campaigns that drive growth",
				Features: []string{
					"Social Media Marketing", "Content Strategy", "SEO & SEM",
					"Email Marketing", "Analytics & Reporting", "Brand Development",
				},
				Technologies: []string{"Google Analytics", "Facebook Ads", "Google Ads", "Mailchimp"},
			},
			{
				Title:       "UI/UX & Graphic Design",
				Description: "Beautiful designs that enhance user experience",
				Features: []string{
					"User Interface Design", "User Experience Research", "Brand Identity",
					"Logo Design", "Print Design", "Prototyping",
				},
				Technologies: []string{"Figma", "Adobe Creative Suite", "Sketch", "InVision"},
			},
		},
		Additional: []Offering{
			{Title: "E-commerce Solutions", Description: "Complete online store development with payment integration"},
			{Title: "Database Design", Description: "Scalable database architecture and optimization"},
			{Title: "Security Audits", Description: "Comprehensive security assessment and implementation"},
			{Title: "Performance Optimization", Description: "Speed and performance improvements for existing applications"},
		},
	}
}
